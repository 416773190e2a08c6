package payments

import (
	"fmt"
	"log"

	"cardpay/internal/config"
	"cardpay/internal/usecase/interfaces"
)

// NewGateway builds the gateway named by cfg.Gateway. The hybrid gateway
// needs both PayPal and Braintree to be fully configured.
func NewGateway(cfg config.PaymentsConfig) (interfaces.IPaymentGateway, error) {
	log.Printf("[payment][gateway] building gateway=%s environment=%s", cfg.Gateway, cfg.Environment)

	switch cfg.Gateway {
	case config.GatewayHybrid, "":
		paypal, err := NewPayPalGateway(cfg.PayPal, cfg.Environment, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		braintree, err := NewBraintreeGateway(cfg.Braintree, cfg.Environment, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return NewRoutingGateway(paypal, braintree, routingPolicy(cfg.Routing)), nil
	case config.GatewayPayPal:
		paypal, err := NewPayPalGateway(cfg.PayPal, cfg.Environment, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return paypal, nil
	case config.GatewayBraintree:
		braintree, err := NewBraintreeGateway(cfg.Braintree, cfg.Environment, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return braintree, nil
	case config.GatewayMercadoPago:
		mp, err := NewMercadoPagoGateway(cfg.MercadoPago)
		if err != nil {
			return nil, err
		}
		return mp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGateway, cfg.Gateway)
}

func routingPolicy(rc config.RoutingConfig) RoutingPolicy {
	policy := DefaultRoutingPolicy()
	if len(rc.PayPalCurrencies) > 0 {
		policy.PayPalCurrencies = rc.PayPalCurrencies
	}
	if len(rc.AmexCurrencies) > 0 {
		policy.RestrictedBrandCurrencies = rc.AmexCurrencies
	}
	return policy
}
