package config

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultVenueRows       = 10

	FXBaseURL      = "https://open.er-api.com/v6/latest"
	BinanceBaseURL = "https://p2p.binance.com"
	OKXBaseURL     = "https://www.okx.com"
)

// Spreads applied when deriving secondary currencies from the primary fiat.
func Spreads() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"UGX": decimal.RequireFromString("0.012"),
		"TZS": decimal.RequireFromString("0.010"),
	}
}
