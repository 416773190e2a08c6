package entities

import (
	"slices"
	"strings"
)

// ValidationErrors maps a field name to a human-readable message.
// An empty map means the entity is valid.
type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// CurrencySet is an enumerated list of ISO currency codes (upper case).
// Membership is order insensitive.
type CurrencySet []string

func NewCurrencySet(codes ...string) CurrencySet {
	out := make(CurrencySet, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ParseCurrencySet reads a comma separated list such as "USD,EUR,AUD".
func ParseCurrencySet(raw string) CurrencySet {
	return NewCurrencySet(strings.Split(raw, ",")...)
}

func (s CurrencySet) Contains(code string) bool {
	return slices.Contains(s, code)
}

func (s CurrencySet) Codes() []string {
	return slices.Clone(s)
}

func (s CurrencySet) String() string {
	return strings.Join(s, ", ")
}
