package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/domain/country"
	"github.com/sitehatch/market-backend/internal/domain/pricing"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

// GetQuote is the live rate lookup behind the order form's sliders. Every
// call reads the template fresh; nothing is cached between invocations. The
// caller's seq token is echoed back so the storefront can drop responses that
// arrive after a newer request (last-issued-wins).
type GetQuote struct {
	uowFactory *dbs.UOWFactory
}

func NewGetQuote(uowFactory *dbs.UOWFactory) *GetQuote {
	return &GetQuote{uowFactory: uowFactory}
}

func (c *GetQuote) Query(ctx context.Context, templateID uint64, countryCode string, months, pages int, seq uint64) (resp *dto.QuoteResponse, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	template, err := repo.NewTemplateRepo(tx).GetTemplateByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// deleted or invalid template degrades to a zero quote
			slog.Debug("quote for missing template", "templateID", templateID)
			err = nil
			return &dto.QuoteResponse{Price: "0.00", Currency: "", Seq: seq}, nil
		}
		return nil, err
	}

	resolved := country.Resolve(countryCode)
	price := pricing.Quote(
		template.BasePrice(resolved.Currency),
		template.RatePerMonth.Mul(resolved.RateMultiplier),
		template.RatePerPage.Mul(resolved.RateMultiplier),
		months,
		pages,
	)

	return &dto.QuoteResponse{
		TemplateName: template.Name,
		Price:        price.StringFixed(2),
		Currency:     resolved.Currency,
		Seq:          seq,
	}, err
}
