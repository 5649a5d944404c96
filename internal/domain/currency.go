package domain

import "regexp"

const DefaultAsset = "USDT"

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency reports whether code looks like an ISO 4217 alpha code.
func ValidateCurrency(code string) bool {
	return currencyRe.MatchString(code)
}
