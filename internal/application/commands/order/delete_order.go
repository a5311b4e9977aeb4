package order

import (
	"context"

	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type DeleteOrder struct {
	uowFactory *dbs.UOWFactory
}

func NewDeleteOrder(factory *dbs.UOWFactory) *DeleteOrder {
	return &DeleteOrder{uowFactory: factory}
}

func (c *DeleteOrder) Execute(ctx context.Context, id string) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	err = repo.NewOrderRepo(tx).DeleteOrder(ctx, id)
	return err
}
