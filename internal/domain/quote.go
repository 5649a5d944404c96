package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices are published as JSON numbers, the way downstream displays expect them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Quote is a single advertised offer: a price and the venue's transaction bounds.
type Quote struct {
	Price decimal.Decimal `json:"price"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

type QuoteSet struct {
	Buy  []Quote `json:"buy"`
	Sell []Quote `json:"sell"`
}
