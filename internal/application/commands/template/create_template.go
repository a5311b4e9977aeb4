package template

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/domain/category"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type CreateTemplate struct {
	uowFactory *dbs.UOWFactory
}

func NewCreateTemplate(factory *dbs.UOWFactory) *CreateTemplate {
	return &CreateTemplate{uowFactory: factory}
}

func (c *CreateTemplate) Execute(ctx context.Context, req *dto.CreateTemplateRequest) (id uint64, err error) {
	record, err := mapToTemplate(req)
	if err != nil {
		return 0, err
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	id, err = repo.NewTemplateRepo(tx).InsertTemplate(ctx, *record)
	if err != nil {
		return 0, err
	}

	return id, err
}

// mapToTemplate parses and checks the admin payload: category must be in the
// closed set, every money field non-negative.
func mapToTemplate(req *dto.CreateTemplateRequest) (*db.Template, error) {
	if req.Name == "" {
		return nil, errs.ValidationError{Err: fmt.Errorf("template name is required")}
	}
	if !category.Valid(category.Category(req.Category)) {
		return nil, errs.ValidationError{Err: fmt.Errorf("unknown category %q", req.Category)}
	}

	record := db.Template{
		Name:        req.Name,
		Category:    req.Category,
		PreviewLink: req.PreviewLink,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}
	for _, field := range []struct {
		name string
		raw  string
		dest *decimal.Decimal
	}{
		{"priceUsd", req.PriceUSD, &record.PriceUSD},
		{"priceEur", req.PriceEUR, &record.PriceEUR},
		{"priceGbp", req.PriceGBP, &record.PriceGBP},
		{"priceKsh", req.PriceKSH, &record.PriceKSH},
		{"ratePerMonth", req.RatePerMonth, &record.RatePerMonth},
		{"ratePerPage", req.RatePerPage, &record.RatePerPage},
	} {
		d, err := decimal.NewFromString(field.raw)
		if err != nil {
			return nil, errs.ValidationError{Err: fmt.Errorf("%s is not a number: %v", field.name, err)}
		}
		if d.IsNegative() {
			return nil, errs.ValidationError{Err: fmt.Errorf("%s must be non-negative", field.name)}
		}
		*field.dest = d
	}

	return &record, nil
}
