package entities

import (
	"strings"
	"testing"
	"time"
)

func TestOrder_Validate(t *testing.T) {
	t.Run("empty order reports required fields", func(t *testing.T) {
		errs := Order{}.Validate()
		for _, f := range []string{FieldPrice, FieldCurrency, FieldName} {
			if !strings.Contains(errs[f], "required") {
				t.Fatalf("expected required error for %s, got %q", f, errs[f])
			}
		}
	})

	t.Run("price", func(t *testing.T) {
		if _, ok := (Order{Price: "100"}).Validate()[FieldPrice]; ok {
			t.Fatalf("expected numeric price to be accepted")
		}
		if _, ok := (Order{Price: "12.50"}).Validate()[FieldPrice]; ok {
			t.Fatalf("expected decimal price to be accepted")
		}
		for _, p := range []string{"test", "NaN", "Inf", "1,00"} {
			got := Order{Price: p}.Validate()[FieldPrice]
			if !strings.Contains(got, "number") {
				t.Fatalf("expected number error for %q, got %q", p, got)
			}
		}
	})

	t.Run("currency", func(t *testing.T) {
		if _, ok := (Order{Currency: "usd"}).Validate()[FieldCurrency]; ok {
			t.Fatalf("expected lower-case usd to be accepted")
		}
		got := Order{Currency: "ZZZ"}.Validate()[FieldCurrency]
		if !strings.Contains(got, "type") {
			t.Fatalf("expected type error, got %q", got)
		}
	})

	t.Run("currency against injected set", func(t *testing.T) {
		set := NewCurrencySet("BRL")
		if _, ok := (Order{Currency: "brl"}).ValidateAgainst(set)[FieldCurrency]; ok {
			t.Fatalf("expected BRL to be accepted by custom set")
		}
		if _, ok := (Order{Currency: "USD"}).ValidateAgainst(set)[FieldCurrency]; !ok {
			t.Fatalf("expected USD to be rejected by custom set")
		}
	})

	t.Run("accepts any name", func(t *testing.T) {
		if _, ok := (Order{Name: "A"}).Validate()[FieldName]; ok {
			t.Fatalf("expected name to be accepted")
		}
	})

	t.Run("complete order is valid", func(t *testing.T) {
		if errs := (Order{Price: "100", Currency: "USD", Name: "A B"}).Validate(); errs.HasErrors() {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})
}

func TestOrder_NormalisedCurrency(t *testing.T) {
	if got := (Order{Currency: "usd"}).NormalisedCurrency(); got != "USD" {
		t.Fatalf("expected USD, got %q", got)
	}
	if got := (Order{}).NormalisedCurrency(); got != "" {
		t.Fatalf("expected empty currency, got %q", got)
	}
}

func TestOrder_PaddedPrice(t *testing.T) {
	o := Order{Price: " 10 ", Currency: "USD", Name: "A B"}
	if errs := o.Validate(); errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := o.NormalisedPrice(); got != "10" {
		t.Fatalf("expected 10, got %q", got)
	}
	if got := o.ToRecord().Price; got != "10" {
		t.Fatalf("expected record price 10, got %q", got)
	}
	if got := (Order{Price: "   "}).Validate()[FieldPrice]; !strings.Contains(got, "number") {
		t.Fatalf("expected number error for blank price, got %q", got)
	}
}

func TestOrder_ToRecord(t *testing.T) {
	rec := Order{Price: "1", Currency: "eur", Name: "N"}.ToRecord()
	if rec.Price != "1" || rec.Currency != "EUR" || rec.Name != "N" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestAcceptedCurrencies(t *testing.T) {
	if len(AcceptedCurrencies) != 6 {
		t.Fatalf("expected 6 accepted currencies, got %v", AcceptedCurrencies)
	}
	for _, c := range []string{"AUD", "SGD", "HKD", "THB", "EUR", "USD"} {
		if !AcceptedCurrencies.Contains(c) {
			t.Fatalf("expected %s to be accepted", c)
		}
	}
}

func TestParseCurrencySet(t *testing.T) {
	set := ParseCurrencySet(" usd, EUR,,aud ,usd")
	if set.String() != "USD, EUR, AUD" {
		t.Fatalf("unexpected set: %v", set)
	}
}

func TestNewPaymentRecord(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	rec := NewPaymentRecord("pay-1",
		Order{Price: "100", Currency: "usd", Name: "A B"},
		NewGatewayResponse("PayPal", []byte(`{"id":"PAY-1"}`)),
		now,
	)
	if rec.ID != "pay-1" || rec.Order.Currency != "USD" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Result.Processor != "PayPal" || rec.Result.Response != `{"id":"PAY-1"}` {
		t.Fatalf("unexpected result: %+v", rec.Result)
	}
	if rec.CreatedAt.Location() != time.UTC || !rec.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at: %v", rec.CreatedAt)
	}
}
