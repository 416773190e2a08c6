package entities

import "strings"

// CardBrand is the card network detected from the leading digits of a card number.
type CardBrand string

const (
	CardBrandUndetermined CardBrand = ""
	CardBrandVisa         CardBrand = "visa"
	CardBrandAmex         CardBrand = "amex"
	CardBrandMastercard   CardBrand = "mastercard"
)

const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldNumber    = "number"
	FieldCCV       = "ccv"
	FieldExpMonth  = "expMonth"
	FieldExpYear   = "expYear"
)

const (
	amexNumberLength    = 15
	defaultNumberLength = 16
	amexCCVLength       = 4
	defaultCCVLength    = 3
)

// CreditCard holds the card details submitted with an order.
//
// Number may contain spaces, dashes or any other separators; every derived
// value (brand, length checks, the number sent to a processor) is computed
// from NormalisedNumber. Token is an optional processor card token used by
// token-based gateways; it is not part of validation.
//
// A CreditCard is built per request and must never be persisted as-is.
type CreditCard struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Number    string `json:"number"`
	CCV       string `json:"ccv"`
	ExpMonth  string `json:"expMonth"`
	ExpYear   string `json:"expYear"`
	Token     string `json:"token,omitempty"`
}

// NormalizeCardNumber strips every character that is not an ASCII digit.
func NormalizeCardNumber(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ClassifyCardBrand detects the brand from an all-digit card number.
//
//	4...        visa
//	34, 37      amex
//	51 .. 55    mastercard
//
// Anything else, including numbers too short to carry a prefix, is undetermined.
func ClassifyCardBrand(digits string) CardBrand {
	if strings.HasPrefix(digits, "4") {
		return CardBrandVisa
	}
	if len(digits) < 2 {
		return CardBrandUndetermined
	}
	switch prefix := digits[:2]; {
	case prefix == "34" || prefix == "37":
		return CardBrandAmex
	case prefix >= "51" && prefix <= "55":
		return CardBrandMastercard
	}
	return CardBrandUndetermined
}

func (c CreditCard) NormalisedNumber() string {
	return NormalizeCardNumber(c.Number)
}

func (c CreditCard) Brand() CardBrand {
	return ClassifyCardBrand(c.NormalisedNumber())
}

// CardholderName is the name as printed on the card.
func (c CreditCard) CardholderName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// LastFour returns the last four digits, safe to log.
func (c CreditCard) LastFour() string {
	n := c.NormalisedNumber()
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

// Validate checks every field independently and returns all problems at once.
func (c CreditCard) Validate() ValidationErrors {
	errs := ValidationErrors{}
	brand := c.Brand()

	if c.FirstName == "" {
		errs[FieldFirstName] = "First name is required"
	}
	if c.LastName == "" {
		errs[FieldLastName] = "Last name is required"
	}

	number := c.NormalisedNumber()
	switch {
	case c.Number == "":
		errs[FieldNumber] = "Number is required"
	case brand == CardBrandUndetermined:
		errs[FieldNumber] = "Number is for unsupported card type"
	case brand == CardBrandAmex && len(number) != amexNumberLength:
		errs[FieldNumber] = "American Express numbers must be 15 digits long"
	case brand != CardBrandAmex && len(number) != defaultNumberLength:
		errs[FieldNumber] = "VISA and MasterCard numbers must be 16 digits long"
	}

	switch {
	case c.CCV == "":
		errs[FieldCCV] = "CCV is required"
	case brand == CardBrandAmex && len(c.CCV) != amexCCVLength:
		errs[FieldCCV] = "American Express CCVs must be 4 digits long"
	case brand != CardBrandAmex && len(c.CCV) != defaultCCVLength:
		errs[FieldCCV] = "Visa and MasterCard CCVs must be 3 digits long"
	}

	if c.ExpMonth == "" {
		errs[FieldExpMonth] = "Expiry Month is required"
	}
	if c.ExpYear == "" {
		errs[FieldExpYear] = "Expiry Year is required"
	}

	return errs
}
