package response

import (
	"encoding/json"
	"time"

	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase"
)

type OrderResponse struct {
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

type PaymentResponse struct {
	ID        string        `json:"id"`
	Processor string        `json:"processor"`
	Order     OrderResponse `json:"order"`
	CreatedAt time.Time     `json:"created_at"`

	// Response is the processor payload as received; ResponsePayload is the
	// same payload decoded, when it is a JSON object.
	Response        string         `json:"response"`
	ResponsePayload map[string]any `json:"response_payload,omitempty"`
}

func FromPaymentRecord(p entities.PaymentRecord) PaymentResponse {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(p.Result.Response), &parsed); err != nil {
		parsed = nil
	}
	return PaymentResponse{
		ID:        p.ID,
		Processor: p.Result.Processor,
		Order: OrderResponse{
			Price:    p.Order.Price,
			Currency: p.Order.Currency,
			Name:     p.Order.Name,
		},
		CreatedAt:       p.CreatedAt,
		Response:        p.Result.Response,
		ResponsePayload: parsed,
	}
}

func FromPaymentRecords(ps []entities.PaymentRecord) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPaymentRecord(p))
	}
	return out
}

// ValidationErrorsResponse groups field messages by entity.
type ValidationErrorsResponse struct {
	Order map[string]string `json:"order"`
	Card  map[string]string `json:"card"`
}

func FromValidationError(e *usecase.ValidationError) ValidationErrorsResponse {
	res := ValidationErrorsResponse{Order: map[string]string{}, Card: map[string]string{}}
	for k, v := range e.Order {
		res.Order[k] = v
	}
	for k, v := range e.Card {
		res.Card[k] = v
	}
	return res
}

type FormOptionsResponse struct {
	Currencies []string `json:"currencies"`
	Months     []string `json:"months"`
	Years      []string `json:"years"`
}

func FromFormOptions(o usecase.FormOptions) FormOptionsResponse {
	return FormOptionsResponse{Currencies: o.Currencies, Months: o.Months, Years: o.Years}
}
