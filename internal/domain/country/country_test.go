package country_test

import (
	"testing"

	"github.com/sitehatch/market-backend/internal/domain/country"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_When_Kenya_Then_KSH_With_Unit_Multiplier(t *testing.T) {
	e := country.Resolve("KE")
	require.Equal(t, "KSH", e.Currency)
	require.True(t, e.RateMultiplier.IsPositive())
	require.Equal(t, "1", e.RateMultiplier.String())
}

func Test_Resolve_When_Unknown_Code_Then_Falls_Back_To_Default(t *testing.T) {
	def := country.Resolve(country.DefaultCode)
	for _, code := range []string{"", "XX", "not-a-country"} {
		e := country.Resolve(code)
		require.Equal(t, def, e, "code %q", code)
	}
}

func Test_Resolve_When_Any_Supported_Code_Then_Has_Currency_And_Positive_Multiplier(t *testing.T) {
	for _, code := range country.Supported() {
		e := country.Resolve(code)
		require.NotEmpty(t, e.Currency, "code %q", code)
		require.True(t, e.RateMultiplier.IsPositive(), "code %q", code)
	}
}
