package query

import (
	"context"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type ListTemplates struct {
	uowFactory *dbs.UOWFactory
}

func NewListTemplates(uowFactory *dbs.UOWFactory) *ListTemplates {
	return &ListTemplates{uowFactory: uowFactory}
}

func (c *ListTemplates) Query(ctx context.Context, cat string) (views []dto.TemplateView, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	templates, err := repo.NewTemplateRepo(tx).ListTemplates(ctx, cat)
	if err != nil {
		return nil, err
	}

	views = make([]dto.TemplateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, mapTemplateView(t))
	}
	return views, err
}

func mapTemplateView(t db.Template) dto.TemplateView {
	return dto.TemplateView{
		ID:           t.ID,
		Name:         t.Name,
		Category:     t.Category,
		PriceUSD:     t.PriceUSD.StringFixed(2),
		PriceEUR:     t.PriceEUR.StringFixed(2),
		PriceGBP:     t.PriceGBP.StringFixed(2),
		PriceKSH:     t.PriceKSH.StringFixed(2),
		RatePerMonth: t.RatePerMonth.StringFixed(2),
		RatePerPage:  t.RatePerPage.StringFixed(2),
		PreviewLink:  t.PreviewLink,
		ImageURL:     t.ImageURL,
	}
}
