package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "GATEWAY_TIMEOUT", "BRAINTREE_ACCOUNT_CURRENCIES", "ACCEPTED_CURRENCIES",
		"PAYMENT_GATEWAY", "APP_ENV", "PAYPAL_CURRENCIES", "AMEX_CURRENCIES",
		"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "KAFKA_BROKERS", "PAYMENTS_TABLE",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.Payments.Gateway != GatewayHybrid {
		t.Fatalf("unexpected gateway: %q", cfg.Payments.Gateway)
	}
	if cfg.Payments.Environment != EnvironmentSandbox {
		t.Fatalf("unexpected environment: %q", cfg.Payments.Environment)
	}
	if cfg.Payments.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Payments.Timeout)
	}
	if len(cfg.Payments.AcceptedCurrencies) != 6 {
		t.Fatalf("unexpected accepted currencies: %v", cfg.Payments.AcceptedCurrencies)
	}
	if cfg.DynamoDB.PaymentsTable != "payments" {
		t.Fatalf("unexpected table: %q", cfg.DynamoDB.PaymentsTable)
	}
	if cfg.Kafka.Enabled() || cfg.Tracing.Enabled() {
		t.Fatalf("expected kafka and tracing to be disabled")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PAYMENT_GATEWAY", "PayPal")
	t.Setenv("GATEWAY_TIMEOUT", "5s")
	t.Setenv("BRAINTREE_ACCOUNT_CURRENCIES", `{"hkd":"account1"}`)
	t.Setenv("PAYPAL_CURRENCIES", "usd,eur")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.Payments.Gateway != GatewayPayPal {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Payments.Environment != EnvironmentProduction {
		t.Fatalf("expected production, got %q", cfg.Payments.Environment)
	}
	if cfg.Payments.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Payments.Timeout)
	}
	if cfg.Payments.Braintree.AccountCurrencies["HKD"] != "account1" {
		t.Fatalf("unexpected accounts: %v", cfg.Payments.Braintree.AccountCurrencies)
	}
	if cfg.Payments.Routing.PayPalCurrencies.String() != "USD, EUR" {
		t.Fatalf("unexpected paypal currencies: %v", cfg.Payments.Routing.PayPalCurrencies)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if !cfg.Payments.MercadoPago.Mock {
		t.Fatalf("expected mock mode")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad account currencies", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("GATEWAY_TIMEOUT", "")
		t.Setenv("BRAINTREE_ACCOUNT_CURRENCIES", "{")
		_, err := Load()
		if !errors.Is(err, ErrInvalidAccountCurrencies) {
			t.Fatalf("expected ErrInvalidAccountCurrencies, got %v", err)
		}
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "abc")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("GATEWAY_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error")
		}
	})
}
