package provider

import (
	"context"
	"fmt"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.RateSource.
var _ application.RateSource = (*Fake)(nil)

// Fake returns the same factor for every target. Used for local runs without network.
type Fake struct {
	factor decimal.Decimal
}

func NewFake(factor float64) *Fake { return &Fake{factor: decimal.NewFromFloat(factor)} }

func (f *Fake) FetchConversionFactors(_ context.Context, base string, targets []string) (domain.RateTable, error) {
	if !domain.ValidateCurrency(base) {
		return nil, fmt.Errorf("fake: %w: %q", domain.ErrUnsupportedCurrency, base)
	}
	out := make(domain.RateTable, len(targets))
	for _, c := range targets {
		out[c] = f.factor
	}
	return out, nil
}
