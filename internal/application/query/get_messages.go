package query

import (
	"context"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

type GetMessages struct {
	uowFactory *dbs.UOWFactory
}

func NewGetMessages(uowFactory *dbs.UOWFactory) *GetMessages {
	return &GetMessages{uowFactory: uowFactory}
}

func (c *GetMessages) Query(ctx context.Context, sessionID string) (views []dto.MessageView, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	messages, err := repo.NewMessageRepo(tx).ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	views = make([]dto.MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, dto.MessageView{
			ID:        m.ID,
			SessionID: m.SessionID,
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return views, err
}
