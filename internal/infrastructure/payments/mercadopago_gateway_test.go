package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cardpay/internal/config"
	"cardpay/internal/domain/entities"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(config.MercadoPagoConfig{})
		if g != nil || !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got gateway=%v err=%v", g, err)
		}
	})

	t.Run("mock needs no token", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(config.MercadoPagoConfig{Mock: true})
		if err != nil || g == nil || !g.mockMode {
			t.Fatalf("expected mock gateway, got gateway=%v err=%v", g, err)
		}
	})
}

func TestMercadoPagoGateway_ProcessMock(t *testing.T) {
	g, err := NewMercadoPagoGateway(config.MercadoPagoConfig{Mock: true, PayerEmail: "buyer@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	card := testCard(mastercardNumber, "123")
	card.Token = "card-token"

	resp, err := g.Process(context.Background(), testOrder("USD"), card)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Processor != ProcessorMercadoPago {
		t.Fatalf("expected MercadoPago, got %s", resp.Processor)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(resp.Response), &body); err != nil {
		t.Fatalf("response is not json: %v", err)
	}
	if body["status"] != "approved" || body["id"] == "" {
		t.Fatalf("unexpected mock response: %v", body)
	}
	if body["payment_method_id"] != "master" || body["transaction_amount"] != 10.0 {
		t.Fatalf("unexpected echoed request: %v", body)
	}
	if _, ok := body["token"]; ok {
		t.Fatalf("card token must not be echoed: %v", body)
	}
	payer := body["payer"].(map[string]any)
	if payer["email"] != "buyer@example.com" {
		t.Fatalf("unexpected payer: %v", payer)
	}
}

func TestMercadoPagoGateway_ProcessNotConfigured(t *testing.T) {
	g := &MercadoPagoGateway{}
	_, err := g.Process(context.Background(), testOrder("USD"), testCard(visaNumber, "123"))
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}

	var nilGateway *MercadoPagoGateway
	_, err = nilGateway.Process(context.Background(), testOrder("USD"), testCard(visaNumber, "123"))
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
}

func TestMercadoPagoMethodID(t *testing.T) {
	cases := map[entities.CardBrand]string{
		entities.CardBrandVisa:         "visa",
		entities.CardBrandAmex:         "amex",
		entities.CardBrandMastercard:   "master",
		entities.CardBrandUndetermined: "",
	}
	for brand, want := range cases {
		if got := mercadoPagoMethodID(brand); got != want {
			t.Fatalf("brand %q: expected %q, got %q", brand, want, got)
		}
	}
}
