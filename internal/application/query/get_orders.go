package query

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type GetOrders struct {
	uowFactory *dbs.UOWFactory
}

func NewGetOrders(uowFactory *dbs.UOWFactory) *GetOrders {
	return &GetOrders{uowFactory: uowFactory}
}

func (c *GetOrders) List(ctx context.Context, limit int) (views []dto.OrderView, err error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	orders, err := repo.NewOrderRepo(tx).ListOrders(ctx, limit)
	if err != nil {
		return nil, err
	}

	views = make([]dto.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, mapOrderView(o))
	}
	return views, err
}

func (c *GetOrders) Get(ctx context.Context, id string) (view *dto.OrderView, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	order, err := repo.NewOrderRepo(tx).GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mapped := mapOrderView(*order)
	return &mapped, err
}

func mapOrderView(o db.CustomRequest) dto.OrderView {
	var extension map[string]string
	if len(o.Extension) > 0 {
		if err := json.Unmarshal(o.Extension, &extension); err != nil {
			slog.Error("err unmarshalling order extension", "orderID", o.ID, "err", err)
		}
	}
	return dto.OrderView{
		ID:             o.ID.String(),
		Name:           o.Name,
		Email:          o.Email,
		Phone:          o.Phone,
		Category:       o.Category,
		TemplateName:   o.TemplateName,
		Country:        o.Country,
		Currency:       o.Currency,
		Price:          o.Price.StringFixed(2),
		DurationMonths: o.DurationMonths,
		PageCount:      o.PageCount,
		ExtraPages:     o.ExtraPages,
		DomainChoice:   o.DomainChoice,
		DomainName:     o.DomainName,
		ThemeChoice:    o.ThemeChoice,
		CustomColor:    o.CustomColor,
		SocialHandles:  o.SocialHandles,
		Message:        o.Message,
		Extension:      extension,
		FileURLs:       o.FileURLs,
		CreatedAt:      o.CreatedAt,
	}
}
