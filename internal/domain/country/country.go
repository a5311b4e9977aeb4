package country

import "github.com/shopspring/decimal"

// Entry is the resolved currency for a storefront country: the currency code
// shown next to the price and the multiplier applied to the template's
// per-unit rates (rates are stored in KSH).
type Entry struct {
	Code           string
	Currency       string
	RateMultiplier decimal.Decimal
}

const DefaultCode = "US"

var entries = map[string]Entry{
	"KE": {Code: "KE", Currency: "KSH", RateMultiplier: decimal.NewFromInt(1)},
	"US": {Code: "US", Currency: "USD", RateMultiplier: decimal.RequireFromString("0.0078")},
	"GB": {Code: "GB", Currency: "GBP", RateMultiplier: decimal.RequireFromString("0.0061")},
	"DE": {Code: "DE", Currency: "EUR", RateMultiplier: decimal.RequireFromString("0.0071")},
	"FR": {Code: "FR", Currency: "EUR", RateMultiplier: decimal.RequireFromString("0.0071")},
	"NG": {Code: "NG", Currency: "USD", RateMultiplier: decimal.RequireFromString("0.0078")},
	"ZA": {Code: "ZA", Currency: "USD", RateMultiplier: decimal.RequireFromString("0.0078")},
}

// Resolve maps a country code to its currency entry. Total over any input:
// unknown or empty codes resolve to the default entry.
func Resolve(code string) Entry {
	if e, ok := entries[code]; ok {
		return e
	}
	return entries[DefaultCode]
}

// Supported lists the country codes with an explicit entry.
func Supported() []string {
	codes := make([]string, 0, len(entries))
	for code := range entries {
		codes = append(codes, code)
	}
	return codes
}
