package template

import (
	"context"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type UpdateTemplate struct {
	uowFactory *dbs.UOWFactory
}

func NewUpdateTemplate(factory *dbs.UOWFactory) *UpdateTemplate {
	return &UpdateTemplate{uowFactory: factory}
}

func (c *UpdateTemplate) Execute(ctx context.Context, id uint64, req *dto.CreateTemplateRequest) (err error) {
	record, err := mapToTemplate(req)
	if err != nil {
		return err
	}
	record.ID = id

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	err = repo.NewTemplateRepo(tx).UpdateTemplate(ctx, *record)
	return err
}
