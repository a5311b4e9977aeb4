package interfaces

import (
	"context"
	"io"

	"github.com/sitehatch/market-backend/internal/infra/db"
	shared "github.com/sitehatch/market-backend/pkg/interfaces"
)

// ObjectStore is the slice of the storage client the upload batch needs.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, contentType *string, body io.Reader) (string, error)
	DeleteObjects(ctx context.Context, keys []string) error
}

// FileReader serves stored object content for the admin download endpoint.
type FileReader interface {
	GetFile(ctx context.Context, key string) ([]byte, error)
}

// SubmitGuard rejects a second submission carrying the same token while the
// first one is still in flight.
type SubmitGuard interface {
	Acquire(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string)
}

type TemplateRepo interface {
	GetTemplateByID(ctx context.Context, id uint64) (*db.Template, error)
}

type OrderRepo interface {
	InsertOrder(ctx context.Context, order db.CustomRequest) error
}

type EventRepo interface {
	InsertEvent(ctx context.Context, event shared.Event) error
}

// Assistant answers a customer message against a knowledge base.
type Assistant interface {
	Answer(ctx context.Context, message, topic string, knowledge []string) (string, error)
}

// Broadcaster pushes a payload to every websocket client of a chat session.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}
