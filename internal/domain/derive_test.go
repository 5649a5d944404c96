package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDerive_BuyAppliesMarkup(t *testing.T) {
	src := []Quote{{Price: dec("150"), Min: dec("1000"), Max: dec("50000")}}

	out := Derive(src, dec("130.5"), dec("0.012"), SideBuy)

	require.Len(t, out, 1)
	// 150 * 130.5 * 1.012 = 19809.9
	require.True(t, out[0].Price.Equal(dec("19810")), out[0].Price.String())
	require.True(t, out[0].Min.Equal(dec("1000")))
	require.True(t, out[0].Max.Equal(dec("50000")))
}

func TestDerive_SellAppliesMarkdown(t *testing.T) {
	src := []Quote{{Price: dec("150"), Min: dec("500"), Max: dec("900")}}

	out := Derive(src, dec("130.5"), dec("0.012"), SideSell)

	// 150 * 130.5 * 0.988 = 19340.1
	require.True(t, out[0].Price.Equal(dec("19340")), out[0].Price.String())
}

func TestDerive_RoundsHalfAwayFromZero(t *testing.T) {
	src := []Quote{{Price: dec("10.25")}}

	out := Derive(src, dec("2"), decimal.Zero, SideBuy)

	require.True(t, out[0].Price.Equal(dec("21")), out[0].Price.String())
}

func TestDerive_MatchesFormulaAcrossInputs(t *testing.T) {
	cases := []struct {
		price, factor, spread string
	}{
		{"129.4", "28.91", "0.010"},
		{"131.05", "29.02", "0.012"},
		{"1", "3750.2", "0.05"},
		{"0.5", "1", "0"},
	}
	for _, c := range cases {
		p, f, s := dec(c.price), dec(c.factor), dec(c.spread)
		base := p.Mul(f)

		buy := Derive([]Quote{{Price: p}}, f, s, SideBuy)
		sell := Derive([]Quote{{Price: p}}, f, s, SideSell)

		require.True(t, buy[0].Price.Equal(base.Mul(decimal.NewFromInt(1).Add(s)).Round(0)), c)
		require.True(t, sell[0].Price.Equal(base.Mul(decimal.NewFromInt(1).Sub(s)).Round(0)), c)
		require.True(t, buy[0].Price.GreaterThanOrEqual(sell[0].Price), c)
	}
}

func TestDerive_EmptyInputYieldsEmptySlice(t *testing.T) {
	out := Derive(nil, dec("1"), dec("0.01"), SideBuy)
	require.NotNil(t, out)
	require.Empty(t, out)
}
