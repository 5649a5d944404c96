package domain

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ApplySpread marks price up for buy and down for sell.
func ApplySpread(price, spread decimal.Decimal, side Side) decimal.Decimal {
	if side == SideBuy {
		return price.Mul(one.Add(spread))
	}
	return price.Mul(one.Sub(spread))
}

// Derive converts quotes into another currency with factor and applies spread.
// Prices are rounded to whole units, half away from zero. Min and Max stay in the
// source currency.
func Derive(src []Quote, factor, spread decimal.Decimal, side Side) []Quote {
	out := make([]Quote, 0, len(src))
	for _, q := range src {
		out = append(out, Quote{
			Price: ApplySpread(q.Price.Mul(factor), spread, side).Round(0),
			Min:   q.Min,
			Max:   q.Max,
		})
	}
	return out
}
