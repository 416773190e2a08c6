package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentRecordNotFound = errors.New("payment record not found")
	ErrInvalidPaymentID      = errors.New("invalid payment id")
	ErrInvalidProcessor      = errors.New("invalid processor")
	ErrGatewayNotConfigured  = errors.New("payment gateway not configured")
)

const expiryYearsOffered = 10

// ValidationError carries every field problem found on the order and the card.
// Keys are the JSON field names of each entity.
type ValidationError struct {
	Order entities.ValidationErrors
	Card  entities.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payment validation failed: %d order error(s), %d card error(s)", len(e.Order), len(e.Card))
}

// FormOptions lists the values a checkout form offers for its select fields.
type FormOptions struct {
	Currencies []string
	Months     []string
	Years      []string
}

// IPaymentUseCase validates and charges an order, and reads back processed payments.
type IPaymentUseCase interface {
	Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	ListByProcessor(ctx context.Context, processor string) ([]entities.PaymentRecord, error)
	FormOptions(now time.Time) FormOptions
}

type PaymentUseCase struct {
	gateway   interfaces.IPaymentGateway
	repo      interfaces.IPaymentRecordRepository
	publisher interfaces.IPaymentEventPublisher
	accepted  entities.CurrencySet
	now       func() time.Time
	newID     func() string
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the use case. repo and publisher may be nil; an
// empty accepted set falls back to entities.AcceptedCurrencies.
func NewPaymentUseCase(gateway interfaces.IPaymentGateway, repo interfaces.IPaymentRecordRepository, publisher interfaces.IPaymentEventPublisher, accepted entities.CurrencySet) *PaymentUseCase {
	if len(accepted) == 0 {
		accepted = entities.AcceptedCurrencies
	}
	return &PaymentUseCase{
		gateway:   gateway,
		repo:      repo,
		publisher: publisher,
		accepted:  accepted,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Process validates order and card, then charges through the gateway once.
//
// Gateway errors are returned unchanged. After a successful charge the record
// is stored and announced; failures there are logged and never turn the
// charge into an error, since the money has already moved.
func (u *PaymentUseCase) Process(ctx context.Context, order entities.Order, card entities.CreditCard) (entities.PaymentRecord, error) {
	log.Printf("[payment][usecase] process start currency=%q brand=%s last4=%s", order.Currency, card.Brand(), card.LastFour())

	orderErrs := order.ValidateAgainst(u.accepted)
	cardErrs := card.Validate()
	if orderErrs.HasErrors() || cardErrs.HasErrors() {
		log.Printf("[payment][usecase] validation failed order_errors=%d card_errors=%d", len(orderErrs), len(cardErrs))
		return entities.PaymentRecord{}, &ValidationError{Order: orderErrs, Card: cardErrs}
	}

	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured")
		return entities.PaymentRecord{}, ErrGatewayNotConfigured
	}

	result, err := u.gateway.Process(ctx, order, card)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed err=%v", err)
		return entities.PaymentRecord{}, err
	}
	log.Printf("[payment][usecase] payment gateway success processor=%s response_len=%d", result.Processor, len(result.Response))

	record := entities.NewPaymentRecord(u.newID(), order, result, u.now())

	if u.repo != nil {
		if _, err := u.repo.Create(ctx, record); err != nil {
			log.Printf("[payment][usecase] payment repository create failed payment_id=%s err=%v", record.ID, err)
		}
	}
	if u.publisher != nil {
		if err := u.publisher.PublishPaymentProcessed(ctx, record); err != nil {
			log.Printf("[payment][usecase] publish payment processed failed payment_id=%s err=%v", record.ID, err)
		}
	}

	log.Printf("[payment][usecase] process success payment_id=%s processor=%s", record.ID, record.Result.Processor)
	return record, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentRecord{}, ErrInvalidPaymentID
	}
	if u.repo == nil {
		return entities.PaymentRecord{}, ErrPaymentRecordNotFound
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if p.ID == "" {
		return entities.PaymentRecord{}, ErrPaymentRecordNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByProcessor(ctx context.Context, processor string) ([]entities.PaymentRecord, error) {
	processor = strings.TrimSpace(processor)
	if processor == "" {
		return nil, ErrInvalidProcessor
	}
	if u.repo == nil {
		return []entities.PaymentRecord{}, nil
	}
	return u.repo.ListByProcessor(ctx, processor)
}

// FormOptions offers the accepted currencies, the twelve months and ten
// expiry years starting at the year of now.
func (u *PaymentUseCase) FormOptions(now time.Time) FormOptions {
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf("%02d", m))
	}

	years := make([]string, 0, expiryYearsOffered)
	for y := now.Year(); y < now.Year()+expiryYearsOffered; y++ {
		years = append(years, fmt.Sprintf("%d", y))
	}

	return FormOptions{
		Currencies: u.accepted.Codes(),
		Months:     months,
		Years:      years,
	}
}
