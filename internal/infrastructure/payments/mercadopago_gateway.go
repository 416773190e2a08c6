package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"cardpay/internal/config"
	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase/interfaces"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// MercadoPagoGateway charges a card token through the Mercado Pago SDK.
// Mercado Pago never receives raw card data, so cards must carry Token.
//
// In mock mode no request leaves the process and every charge is approved.
type MercadoPagoGateway struct {
	client     payment.Client
	payerEmail string
	mockMode   bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg config.MercadoPagoConfig) (*MercadoPagoGateway, error) {
	if cfg.Mock {
		log.Printf("[payment][gateway][mercadopago] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, payerEmail: cfg.PayerEmail}, nil
	}

	if cfg.AccessToken == "" {
		log.Printf("[payment][gateway][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, &ConfigError{
			Processor: ProcessorMercadoPago,
			Message:   "Mercado Pago API credentials must be provided in MERCADOPAGO_ACCESS_TOKEN",
			Err:       ErrMissingCredentials,
		}
	}

	sdkCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway][mercadopago] client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(sdkCfg), payerEmail: cfg.PayerEmail}, nil
}

func (g *MercadoPagoGateway) Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.GatewayResponse, error) {
	if g == nil {
		return entities.GatewayResponse{}, ErrGatewayNotConfigured
	}

	payload, err := g.requestPayload(order, card)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] payload build failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorMercadoPago, err)
	}

	if g.mockMode {
		return g.mockCreate(payload)
	}

	if g.client == nil {
		log.Printf("[payment][gateway][mercadopago] gateway not configured")
		return entities.GatewayResponse{}, ErrGatewayNotConfigured
	}
	if card.Token == "" {
		return entities.GatewayResponse{}, processorError(ProcessorMercadoPago, ErrCardTokenRequired)
	}
	log.Printf("[payment][gateway][mercadopago] create start payload_len=%d", len(payload))

	var req payment.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("[payment][gateway][mercadopago] payload unmarshal failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorMercadoPago, err)
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] sdk create failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorMercadoPago, err)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] response marshal failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorMercadoPago, err)
	}
	log.Printf("[payment][gateway][mercadopago] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return entities.NewGatewayResponse(ProcessorMercadoPago, b), nil
}

func (g *MercadoPagoGateway) mockCreate(payload []byte) (entities.GatewayResponse, error) {
	log.Printf("[payment][gateway][mercadopago] mock create start payload_len=%d", len(payload))

	resp := map[string]any{}
	if err := json.Unmarshal(payload, &resp); err != nil {
		resp = map[string]any{"request_payload_raw": string(payload)}
	}
	// the token identifies a card; the echo must not carry it
	delete(resp, "token")

	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] mock response marshal failed err=%v", err)
		return entities.GatewayResponse{}, processorError(ProcessorMercadoPago, err)
	}

	log.Printf("[payment][gateway][mercadopago] mock create success provider_payment_id=%s provider_status=approved", id)
	return entities.NewGatewayResponse(ProcessorMercadoPago, b), nil
}

func (g *MercadoPagoGateway) requestPayload(order entities.Order, card entities.CreditCard) ([]byte, error) {
	amount, err := order.Amount()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProcessorPayload, err)
	}

	payload := map[string]any{
		"transaction_amount": amount,
		"installments":       1,
		"payment_method_id":  mercadoPagoMethodID(card.Brand()),
		"description":        order.Name,
		"payer": map[string]any{
			"email":      g.payerEmail,
			"first_name": card.FirstName,
			"last_name":  card.LastName,
		},
	}
	if card.Token != "" {
		payload["token"] = card.Token
	}
	return json.Marshal(payload)
}

func mercadoPagoMethodID(brand entities.CardBrand) string {
	switch brand {
	case entities.CardBrandMastercard:
		return "master"
	case entities.CardBrandVisa, entities.CardBrandAmex:
		return string(brand)
	}
	return ""
}
