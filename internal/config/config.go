package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cardpay/internal/domain/entities"
)

// Environment selects sandbox or production endpoints for every processor.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

const (
	GatewayHybrid      = "hybrid"
	GatewayPayPal      = "paypal"
	GatewayBraintree   = "braintree"
	GatewayMercadoPago = "mercadopago"
)

const (
	defaultPort           = 8080
	defaultGatewayTimeout = 30 * time.Second
	defaultPaymentsTable  = "payments"
	defaultPaymentsTopic  = "payments.processed"
	defaultServiceName    = "cardpay"
)

var ErrInvalidAccountCurrencies = errors.New("invalid BRAINTREE_ACCOUNT_CURRENCIES")

// Config is the process-wide configuration, resolved once at startup.
//
// Nothing below the cmd/ layer reads the environment: components receive the
// struct they need, so tests can build them from literals.
type Config struct {
	Port     int
	Payments PaymentsConfig
	DynamoDB DynamoDBConfig
	Kafka    KafkaConfig
	Tracing  TracingConfig
}

type PaymentsConfig struct {
	Gateway            string
	Environment        Environment
	Timeout            time.Duration
	AcceptedCurrencies entities.CurrencySet
	Routing            RoutingConfig
	PayPal             PayPalConfig
	Braintree          BraintreeConfig
	MercadoPago        MercadoPagoConfig
}

// RoutingConfig tunes the hybrid gateway. Empty sets fall back to the defaults.
type RoutingConfig struct {
	PayPalCurrencies entities.CurrencySet
	AmexCurrencies   entities.CurrencySet
}

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	// BaseURL overrides the environment default (used against local fakes).
	BaseURL string
}

type BraintreeConfig struct {
	MerchantID string
	PublicKey  string
	PrivateKey string
	// AccountCurrencies maps an ISO currency to the merchant account charging in it.
	AccountCurrencies map[string]string
	BaseURL           string
}

type MercadoPagoConfig struct {
	AccessToken string
	// PayerEmail is sent as payer.email; the checkout collects no e-mail.
	PayerEmail string
	Mock       bool
}

type DynamoDBConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	PaymentsTable   string
}

type KafkaConfig struct {
	Brokers       []string
	PaymentsTopic string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

func (t TracingConfig) Enabled() bool {
	return t.Endpoint != ""
}

// Load reads the configuration from environment variables.
//
// Only malformed values fail here. Missing processor credentials are reported
// by the gateway constructors, which know what each processor needs.
func Load() (Config, error) {
	port, err := strconv.Atoi(getenvDefault("PORT", strconv.Itoa(defaultPort)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}

	timeout := defaultGatewayTimeout
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		timeout, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
		}
	}

	accounts, err := ParseAccountCurrencies(os.Getenv("BRAINTREE_ACCOUNT_CURRENCIES"))
	if err != nil {
		return Config{}, err
	}

	accepted := entities.AcceptedCurrencies
	if v := os.Getenv("ACCEPTED_CURRENCIES"); v != "" {
		accepted = entities.ParseCurrencySet(v)
	}

	return Config{
		Port: port,
		Payments: PaymentsConfig{
			Gateway:            strings.ToLower(getenvDefault("PAYMENT_GATEWAY", GatewayHybrid)),
			Environment:        ParseEnvironment(os.Getenv("APP_ENV")),
			Timeout:            timeout,
			AcceptedCurrencies: accepted,
			Routing: RoutingConfig{
				PayPalCurrencies: entities.ParseCurrencySet(os.Getenv("PAYPAL_CURRENCIES")),
				AmexCurrencies:   entities.ParseCurrencySet(os.Getenv("AMEX_CURRENCIES")),
			},
			PayPal: PayPalConfig{
				ClientID:     os.Getenv("PAYPAL_ID"),
				ClientSecret: os.Getenv("PAYPAL_SECRET"),
				BaseURL:      os.Getenv("PAYPAL_BASE_URL"),
			},
			Braintree: BraintreeConfig{
				MerchantID:        os.Getenv("BRAINTREE_ID"),
				PublicKey:         os.Getenv("BRAINTREE_PUBLIC"),
				PrivateKey:        os.Getenv("BRAINTREE_PRIVATE"),
				AccountCurrencies: accounts,
				BaseURL:           os.Getenv("BRAINTREE_BASE_URL"),
			},
			MercadoPago: MercadoPagoConfig{
				AccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
				PayerEmail:  os.Getenv("MERCADOPAGO_PAYER_EMAIL"),
				Mock:        IsTruthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) || IsTruthy(os.Getenv("MERCADOPAGO_MOCK")),
			},
		},
		DynamoDB: DynamoDBConfig{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			PaymentsTable:   getenvDefault("PAYMENTS_TABLE", defaultPaymentsTable),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(os.Getenv("KAFKA_BROKERS")),
			PaymentsTopic: getenvDefault("KAFKA_PAYMENTS_TOPIC", defaultPaymentsTopic),
		},
		Tracing: TracingConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: getenvDefault("OTEL_SERVICE_NAME", defaultServiceName),
		},
	}, nil
}

// ParseEnvironment treats everything except "production" as sandbox.
func ParseEnvironment(v string) Environment {
	if strings.EqualFold(strings.TrimSpace(v), string(EnvironmentProduction)) {
		return EnvironmentProduction
	}
	return EnvironmentSandbox
}

// ParseAccountCurrencies decodes a JSON object of currency => merchant account,
// e.g. {"HKD":"account1"}. Keys are upper-cased. An empty input yields nil.
func ParseAccountCurrencies(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountCurrencies, err)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out, nil
}

func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
