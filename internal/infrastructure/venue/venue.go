// Package venue holds the P2P venue adapters.
package venue

import (
	"bytes"

	"p2pquotes-service/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultRows = 10

// rawQuote is the decoded shape shared by venues that publish prices as strings.
type rawQuote struct {
	Price decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
}

func truncate(in []rawQuote, rows int) []domain.Quote {
	if rows <= 0 {
		rows = defaultRows
	}
	if len(in) > rows {
		in = in[:rows]
	}
	out := make([]domain.Quote, 0, len(in))
	for _, q := range in {
		out = append(out, domain.Quote{Price: q.Price, Min: q.Min, Max: q.Max})
	}
	return out
}

// bound is a transaction limit as venues publish it. Empty, null or
// non-numeric values decode to zero instead of failing the whole book.
type bound struct {
	decimal.Decimal
}

func (b *bound) UnmarshalJSON(data []byte) error {
	b.Decimal = decimal.Zero
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		b.Decimal = d
	}
	return nil
}
