package interfaces

import (
	"context"

	"cardpay/internal/domain/entities"
)

// IPaymentGateway is the contract every payment processor adapter implements.
//
// Process charges the card for the order and blocks until the processor
// answers or ctx is done. Callers validate order and card beforehand; the
// gateway does not validate again. A successful call returns a
// GatewayResponse tagged with the processor that produced it; on failure no
// GatewayResponse is built and the error wraps what the processor reported
// for diagnostics.
type IPaymentGateway interface {
	Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.GatewayResponse, error)
}
