package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable maps a target currency to the number of target units per 1 unit of the base currency.
type RateTable map[string]decimal.Decimal

// Covers reports whether every target has a factor.
func (t RateTable) Covers(targets []string) bool {
	for _, c := range targets {
		if _, ok := t[c]; !ok {
			return false
		}
	}
	return true
}

// Clone returns a copy safe to hand to callers.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

type RateEntry struct {
	Base      string    `json:"base"`
	Rates     RateTable `json:"rates"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FreshAt reports whether the entry is younger than window at now.
func (e RateEntry) FreshAt(now time.Time, window time.Duration) bool {
	if e.FetchedAt.IsZero() || e.Rates == nil {
		return false
	}
	return now.Sub(e.FetchedAt) < window
}
