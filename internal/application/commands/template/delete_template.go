package template

import (
	"context"

	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type DeleteTemplate struct {
	uowFactory *dbs.UOWFactory
}

func NewDeleteTemplate(factory *dbs.UOWFactory) *DeleteTemplate {
	return &DeleteTemplate{uowFactory: factory}
}

func (c *DeleteTemplate) Execute(ctx context.Context, id uint64) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	err = repo.NewTemplateRepo(tx).DeleteTemplate(ctx, id)
	return err
}
