package entities

import (
	"math"
	"strconv"
	"strings"
)

const (
	FieldPrice    = "price"
	FieldCurrency = "currency"
	FieldName     = "name"
)

// AcceptedCurrencies is the default set of currencies an order may be placed in.
var AcceptedCurrencies = NewCurrencySet("USD", "EUR", "THB", "HKD", "SGD", "AUD")

// Order is the purchase being paid for.
//
// Price is kept as the text the payer submitted so it can be forwarded to a
// processor without float rounding. Currency is case-insensitive; use
// NormalisedCurrency for every comparison.
type Order struct {
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

// OrderRecord is the plain projection of an Order handed to persistence.
type OrderRecord struct {
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

func (o Order) NormalisedCurrency() string {
	return strings.ToUpper(o.Currency)
}

// NormalisedPrice is Price without surrounding whitespace. It is the value
// validated, forwarded to processors and persisted.
func (o Order) NormalisedPrice() string {
	return strings.TrimSpace(o.Price)
}

// Amount parses Price. It is only meaningful on a validated order.
func (o Order) Amount() (float64, error) {
	return strconv.ParseFloat(o.NormalisedPrice(), 64)
}

func (o Order) Validate() ValidationErrors {
	return o.ValidateAgainst(AcceptedCurrencies)
}

// ValidateAgainst validates the order using the given accepted currency set.
func (o Order) ValidateAgainst(accepted CurrencySet) ValidationErrors {
	errs := ValidationErrors{}

	if o.Price == "" {
		errs[FieldPrice] = "Price is required"
	} else if !isNumeric(o.NormalisedPrice()) {
		errs[FieldPrice] = "Price must be a number"
	}

	if o.Currency == "" {
		errs[FieldCurrency] = "Currency is required"
	} else if !accepted.Contains(o.NormalisedCurrency()) {
		errs[FieldCurrency] = "Currency is not of type accepted"
	}

	if o.Name == "" {
		errs[FieldName] = "Name is required"
	}

	return errs
}

func (o Order) ToRecord() OrderRecord {
	return OrderRecord{
		Price:    o.NormalisedPrice(),
		Currency: o.NormalisedCurrency(),
		Name:     o.Name,
	}
}

func isNumeric(s string) bool {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
