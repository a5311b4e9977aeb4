package pricing

import "github.com/shopspring/decimal"

// Fallbacks applied when the storefront sends a missing or invalid value.
const (
	DefaultMonths = 12
	DefaultPages  = 5
)

// ExtraPagesThreshold is the page count above which the extra-pages
// description becomes required on an order.
const ExtraPagesThreshold = 5

var zero = decimal.Zero

// Quote computes base + ratePerMonth×months + ratePerPage×pages, rounded to
// two decimal places. The live quote endpoint and order submission both go
// through this function, so a previewed price and the persisted price are
// identical for identical inputs.
func Quote(base, ratePerMonth, ratePerPage decimal.Decimal, months, pages int) decimal.Decimal {
	if months < 1 {
		months = DefaultMonths
	}
	if pages < 1 {
		pages = DefaultPages
	}
	base = clamp(base)
	ratePerMonth = clamp(ratePerMonth)
	ratePerPage = clamp(ratePerPage)

	total := base.
		Add(ratePerMonth.Mul(decimal.NewFromInt(int64(months)))).
		Add(ratePerPage.Mul(decimal.NewFromInt(int64(pages))))
	return total.Round(2)
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return zero
	}
	return d
}
