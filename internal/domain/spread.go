package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Spreads maps a secondary currency to its fractional spread (0.012 is 1.2%).
type Spreads map[string]decimal.Decimal

// Currencies returns the configured currencies in a stable order.
func (s Spreads) Currencies() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Except returns the configured currencies without primary.
func (s Spreads) Except(primary string) []string {
	all := s.Currencies()
	out := all[:0]
	for _, c := range all {
		if c != primary {
			out = append(out, c)
		}
	}
	return out
}
