package interfaces

import (
	"context"

	"cardpay/internal/domain/entities"
)

// IPaymentEventPublisher announces processed payments to other services.
type IPaymentEventPublisher interface {
	PublishPaymentProcessed(ctx context.Context, p entities.PaymentRecord) error
}
