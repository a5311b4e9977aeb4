package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/interfaces"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

// PostMessage persists a chat message and fans it out to the session's
// websocket clients.
type PostMessage struct {
	uowFactory  *dbs.UOWFactory
	broadcaster interfaces.Broadcaster
}

func NewPostMessage(factory *dbs.UOWFactory, broadcaster interfaces.Broadcaster) *PostMessage {
	return &PostMessage{uowFactory: factory, broadcaster: broadcaster}
}

func (c *PostMessage) Execute(ctx context.Context, req *dto.PostMessageRequest) (view *dto.MessageView, err error) {
	if req.SessionID == "" || req.Content == "" {
		return nil, errs.ValidationError{Err: fmt.Errorf("sessionId and content are required")}
	}
	sender := consts.Sender(req.Sender)
	if sender != consts.SenderUser && sender != consts.SenderAdmin && sender != consts.SenderAssistant {
		return nil, errs.ValidationError{Err: fmt.Errorf("unknown sender %q", req.Sender)}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	msg := db.Message{
		SessionID: req.SessionID,
		Sender:    req.Sender,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	msg.ID, err = repo.NewMessageRepo(tx).InsertMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	view = &dto.MessageView{
		ID:        msg.ID,
		SessionID: msg.SessionID,
		Sender:    msg.Sender,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	if c.broadcaster != nil {
		payload, marshalErr := json.Marshal(view)
		if marshalErr != nil {
			slog.Error("err marshalling chat message for broadcast", "err", marshalErr)
		} else {
			c.broadcaster.Broadcast(msg.SessionID, payload)
		}
	}

	return view, err
}
