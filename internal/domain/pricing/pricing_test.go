package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sitehatch/market-backend/internal/domain/pricing"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Test_Quote_When_Kenyan_Business_Template_Then_Matches_Manual_Sum(t *testing.T) {
	// 1000 + 50×6 + 10×8 = 1380.00
	got := pricing.Quote(dec("1000"), dec("50"), dec("10"), 6, 8)
	require.Equal(t, "1380.00", got.StringFixed(2))
}

func Test_Quote_When_Defaults_Apply_Then_Uses_Twelve_Months_And_Five_Pages(t *testing.T) {
	base, rpm, rpp := dec("200"), dec("15"), dec("4")

	got := pricing.Quote(base, rpm, rpp, 0, -3)

	want := pricing.Quote(base, rpm, rpp, pricing.DefaultMonths, pricing.DefaultPages)
	require.True(t, got.Equal(want))
	require.Equal(t, "400.00", got.StringFixed(2)) // 200 + 15×12 + 4×5
}

func Test_Quote_When_Negative_Rates_Then_Clamped_To_Zero(t *testing.T) {
	got := pricing.Quote(dec("-10"), dec("-1"), dec("-1"), 3, 3)
	require.Equal(t, "0.00", got.StringFixed(2))
}

func Test_Quote_When_Called_Twice_With_Same_Inputs_Then_Identical(t *testing.T) {
	first := pricing.Quote(dec("999.99"), dec("33.33"), dec("7.77"), 7, 11)
	second := pricing.Quote(dec("999.99"), dec("33.33"), dec("7.77"), 7, 11)
	require.True(t, first.Equal(second))
	require.Equal(t, first.StringFixed(2), second.StringFixed(2))
}

func Test_Quote_When_Fractional_Rates_Then_Rounded_To_Two_Decimals(t *testing.T) {
	// 100 + 0.333×12 + 0.111×5 = 104.551 → 104.55
	got := pricing.Quote(dec("100"), dec("0.333"), dec("0.111"), 12, 5)
	require.Equal(t, "104.55", got.StringFixed(2))
}
