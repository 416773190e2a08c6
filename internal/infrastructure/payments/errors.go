package payments

import (
	"errors"
	"fmt"

	"cardpay/internal/domain/entities"
)

const (
	ProcessorPayPal      = "PayPal"
	ProcessorBraintree   = "Braintree"
	ProcessorMercadoPago = "MercadoPago"
)

var (
	ErrMissingCredentials      = errors.New("missing processor credentials")
	ErrMissingAccountMapping   = errors.New("missing currency to merchant account mapping")
	ErrUnknownGateway          = errors.New("unknown payment gateway")
	ErrCurrencyNotSupported    = errors.New("currency not supported by gateway")
	ErrCardTokenRequired       = errors.New("card token required")
	ErrUnsupportedRoute        = errors.New("unsupported card and currency combination")
	ErrProcessorRejected       = errors.New("processor rejected the charge")
	ErrGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrInvalidProcessorPayload = errors.New("invalid processor payload")
)

// ConfigError is returned by adapter constructors when required settings are
// absent. It is fatal for that adapter and must not be retried.
type ConfigError struct {
	Processor string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s gateway: %s", e.Processor, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ProcessorError is any failure reported by (or while talking to) a payment
// processor. Err is the underlying error, kept for diagnostics.
type ProcessorError struct {
	Processor string
	Err       error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Processor, e.Err)
}

func (e *ProcessorError) Unwrap() error { return e.Err }

func processorError(processor string, err error) error {
	return &ProcessorError{Processor: processor, Err: err}
}

// RoutingError is returned by the routing gateway, without contacting any
// processor, for a brand and currency combination it never accepts.
type RoutingError struct {
	Brand    entities.CardBrand
	Currency string
	Allowed  entities.CurrencySet
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("%s cards can only be used with %s", brandDisplayName(e.Brand), e.Allowed)
}

func (e *RoutingError) Is(target error) bool {
	return target == ErrUnsupportedRoute
}

func brandDisplayName(b entities.CardBrand) string {
	switch b {
	case entities.CardBrandAmex:
		return "American Express"
	case entities.CardBrandVisa:
		return "Visa"
	case entities.CardBrandMastercard:
		return "MasterCard"
	}
	return string(b)
}
