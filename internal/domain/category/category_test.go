package category_test

import (
	"testing"

	"github.com/sitehatch/market-backend/internal/domain/category"
	"github.com/stretchr/testify/require"
)

func Test_Fields_When_Unknown_Category_Then_Not_OK(t *testing.T) {
	_, ok := category.Fields("restaurant")
	require.False(t, ok)
	require.False(t, category.Valid("restaurant"))
}

func Test_Fields_When_Registered_Category_Then_Ordered_Descriptors(t *testing.T) {
	fields, ok := category.Fields(category.Business)
	require.True(t, ok)
	require.Equal(t, "business_name", fields[0].Key)
	require.True(t, fields[0].Required)
}

func Test_All_Categories_Are_Registered(t *testing.T) {
	for _, cat := range category.All() {
		_, ok := category.Fields(cat)
		require.True(t, ok, "category %q", cat)
	}
}

func Test_Extension_When_Form_Has_Other_Categories_Values_Then_Filtered_Out(t *testing.T) {
	form := map[string]string{
		"business_name": "Acme Ltd",
		"business_type": "Retail",
		"blog_topic":    "left over from a previous selection",
		"event_name":    "also stale",
	}

	ext := category.Extension(category.Business, form)

	require.Equal(t, map[string]string{
		"business_name": "Acme Ltd",
		"business_type": "Retail",
	}, ext)
}

func Test_Extension_When_Unknown_Category_Then_Nil(t *testing.T) {
	require.Nil(t, category.Extension("unknown", map[string]string{"a": "b"}))
}

func Test_MissingRequired_When_Required_Field_Empty_Then_Reported(t *testing.T) {
	missing := category.MissingRequired(category.Ecommerce, map[string]string{
		"product_count": "40",
	})
	require.Equal(t, []string{"store_name"}, missing)

	missing = category.MissingRequired(category.Ecommerce, map[string]string{
		"store_name": "Duka",
	})
	require.Empty(t, missing)
}
