package chat

import (
	"context"
	"fmt"

	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/interfaces"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

// Assist answers a support question. When the caller sends no knowledge base
// of its own, the stored entries for the topic are used.
type Assist struct {
	uowFactory *dbs.UOWFactory
	assistant  interfaces.Assistant
}

func NewAssist(factory *dbs.UOWFactory, assistant interfaces.Assistant) *Assist {
	return &Assist{uowFactory: factory, assistant: assistant}
}

func (c *Assist) Execute(ctx context.Context, req *dto.AssistRequest) (*dto.AssistResponse, error) {
	if req.Message == "" {
		return nil, errs.ValidationError{Err: fmt.Errorf("message is required")}
	}

	knowledge := req.KnowledgeBase
	if len(knowledge) == 0 {
		stored, err := c.loadKnowledge(ctx, req.Topic)
		if err != nil {
			return nil, err
		}
		knowledge = stored
	}

	answer, err := c.assistant.Answer(ctx, req.Message, req.Topic, knowledge)
	if err != nil {
		return nil, err
	}

	return &dto.AssistResponse{Success: true, Message: answer}, nil
}

func (c *Assist) loadKnowledge(ctx context.Context, topic string) (knowledge []string, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	entries, err := repo.NewKnowledgeRepo(tx).ListEntries(ctx, topic)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		knowledge = append(knowledge, e.Content)
	}
	return knowledge, err
}
