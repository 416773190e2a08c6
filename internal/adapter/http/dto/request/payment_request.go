package request

import "cardpay/internal/domain/entities"

// PaymentCreateRequest is the body of POST /v1/payments.
type PaymentCreateRequest struct {
	Order OrderRequest `json:"order"`
	Card  CardRequest  `json:"card"`
}

type OrderRequest struct {
	Price    string `json:"price" example:"10.00"`
	Currency string `json:"currency" example:"USD"`
	Name     string `json:"name" example:"Ada Lovelace"`
}

// CardRequest carries raw card data. Token is only needed by processors that
// charge a vaulted card or a client side token.
type CardRequest struct {
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
	Number    string `json:"number" example:"4111111111111111"`
	CCV       string `json:"ccv" example:"123"`
	ExpMonth  string `json:"expMonth" example:"12"`
	ExpYear   string `json:"expYear" example:"2030"`
	Token     string `json:"token,omitempty"`
}

func (r PaymentCreateRequest) ToOrder() entities.Order {
	return entities.Order{
		Price:    r.Order.Price,
		Currency: r.Order.Currency,
		Name:     r.Order.Name,
	}
}

func (r PaymentCreateRequest) ToCreditCard() entities.CreditCard {
	return entities.CreditCard{
		FirstName: r.Card.FirstName,
		LastName:  r.Card.LastName,
		Number:    r.Card.Number,
		CCV:       r.Card.CCV,
		ExpMonth:  r.Card.ExpMonth,
		ExpYear:   r.Card.ExpYear,
		Token:     r.Card.Token,
	}
}
