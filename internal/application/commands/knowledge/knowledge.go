package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

// Knowledge manages the assistant's knowledge base entries.
type Knowledge struct {
	uowFactory *dbs.UOWFactory
}

func NewKnowledge(factory *dbs.UOWFactory) *Knowledge {
	return &Knowledge{uowFactory: factory}
}

func (c *Knowledge) Create(ctx context.Context, req *dto.CreateKnowledgeRequest) (id uint64, err error) {
	if req.Topic == "" || req.Content == "" {
		return 0, errs.ValidationError{Err: fmt.Errorf("topic and content are required")}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	id, err = repo.NewKnowledgeRepo(tx).InsertEntry(ctx, db.KnowledgeEntry{
		Topic:     req.Topic,
		Content:   req.Content,
		CreatedAt: time.Now(),
	})
	return id, err
}

func (c *Knowledge) List(ctx context.Context, topic string) (entries []dto.KnowledgeEntryView, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	records, err := repo.NewKnowledgeRepo(tx).ListEntries(ctx, topic)
	if err != nil {
		return nil, err
	}

	entries = make([]dto.KnowledgeEntryView, 0, len(records))
	for _, r := range records {
		entries = append(entries, dto.KnowledgeEntryView{
			ID:        r.ID,
			Topic:     r.Topic,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, err
}

func (c *Knowledge) Delete(ctx context.Context, id uint64) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	err = repo.NewKnowledgeRepo(tx).DeleteEntry(ctx, id)
	return err
}
