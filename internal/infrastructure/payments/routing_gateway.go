package payments

import (
	"context"
	"log"

	"cardpay/internal/domain/entities"
	"cardpay/internal/infrastructure/tracing"
	"cardpay/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "cardpay/internal/infrastructure/payments"

// RoutingPolicy decides which processor handles a charge.
//
// RestrictedBrand may only be charged in RestrictedBrandCurrencies and is
// always sent to PayPal. Any other card goes to PayPal when the order
// currency is in PayPalCurrencies, and to Braintree otherwise.
type RoutingPolicy struct {
	RestrictedBrand           entities.CardBrand
	RestrictedBrandCurrencies entities.CurrencySet
	PayPalCurrencies          entities.CurrencySet
}

func DefaultRoutingPolicy() RoutingPolicy {
	return RoutingPolicy{
		RestrictedBrand:           entities.CardBrandAmex,
		RestrictedBrandCurrencies: entities.NewCurrencySet("USD"),
		PayPalCurrencies:          entities.NewCurrencySet("USD", "EUR", "AUD"),
	}
}

// Route is the outcome of a routing decision.
type Route struct {
	Processor string
	Gateway   interfaces.IPaymentGateway
}

// RoutingGateway processes with either PayPal or Braintree depending on the
// card brand and the order currency. It holds no state between calls and
// never calls more than one processor per charge.
type RoutingGateway struct {
	paypal    interfaces.IPaymentGateway
	braintree interfaces.IPaymentGateway
	policy    RoutingPolicy
}

var _ interfaces.IPaymentGateway = (*RoutingGateway)(nil)

func NewRoutingGateway(paypal, braintree interfaces.IPaymentGateway, policy RoutingPolicy) *RoutingGateway {
	return &RoutingGateway{paypal: paypal, braintree: braintree, policy: policy}
}

// Select applies the routing policy without charging anything.
func (g *RoutingGateway) Select(order entities.Order, card entities.CreditCard) (Route, error) {
	currency := order.NormalisedCurrency()
	brand := card.Brand()

	if brand == g.policy.RestrictedBrand {
		if !g.policy.RestrictedBrandCurrencies.Contains(currency) {
			return Route{}, &RoutingError{Brand: brand, Currency: currency, Allowed: g.policy.RestrictedBrandCurrencies}
		}
		return Route{Processor: ProcessorPayPal, Gateway: g.paypal}, nil
	}
	if g.policy.PayPalCurrencies.Contains(currency) {
		return Route{Processor: ProcessorPayPal, Gateway: g.paypal}, nil
	}
	return Route{Processor: ProcessorBraintree, Gateway: g.braintree}, nil
}

func (g *RoutingGateway) Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.GatewayResponse, error) {
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "payments.route")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.card_brand", string(card.Brand())),
		attribute.String("payment.currency", order.NormalisedCurrency()),
	)

	route, err := g.Select(order, card)
	if err != nil {
		log.Printf("[payment][router] rejected brand=%s currency=%s err=%v", card.Brand(), order.NormalisedCurrency(), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return entities.GatewayResponse{}, err
	}
	span.SetAttributes(attribute.String("payment.processor", route.Processor))
	if route.Gateway == nil {
		return entities.GatewayResponse{}, ErrGatewayNotConfigured
	}

	log.Printf("[payment][router] routing brand=%s currency=%s processor=%s", card.Brand(), order.NormalisedCurrency(), route.Processor)
	resp, err := route.Gateway.Process(ctx, order, card)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}
