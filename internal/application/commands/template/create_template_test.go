package template

import (
	"testing"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() *dto.CreateTemplateRequest {
	return &dto.CreateTemplateRequest{
		Name:         "savanna-biz",
		Category:     "business",
		PriceUSD:     "49.99",
		PriceEUR:     "45.50",
		PriceGBP:     "39.99",
		PriceKSH:     "6500",
		RatePerMonth: "50",
		RatePerPage:  "10",
		PreviewLink:  "https://preview.example.com/savanna-biz",
		ImageURL:     "https://cdn.example.com/savanna-biz.png",
	}
}

func Test_MapToTemplate_When_Valid_Then_All_Money_Fields_Parsed(t *testing.T) {
	record, err := mapToTemplate(validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, "6500", record.PriceKSH.String())
	require.Equal(t, "49.99", record.PriceUSD.String())
	require.Equal(t, "50", record.RatePerMonth.String())
}

func Test_MapToTemplate_When_Negative_Price_Then_Rejected(t *testing.T) {
	req := validCreateRequest()
	req.PriceKSH = "-1"
	_, err := mapToTemplate(req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "priceKsh")
}

func Test_MapToTemplate_When_Unknown_Category_Then_Rejected(t *testing.T) {
	req := validCreateRequest()
	req.Category = "casino"
	_, err := mapToTemplate(req)
	require.Error(t, err)
}

func Test_MapToTemplate_When_Rate_Not_A_Number_Then_Rejected(t *testing.T) {
	req := validCreateRequest()
	req.RatePerPage = "ten"
	_, err := mapToTemplate(req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ratePerPage")
}
