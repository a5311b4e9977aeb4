package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sitehatch/market-backend/internal/application"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/processors"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/mail"
	"github.com/sitehatch/market-backend/internal/testinfra"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

// The mail handler fails here (no mail template row is stored), so the status
// update must not ride on the handler's failed tx or the event stays stuck in
// processing.
func Test_HandleEvent_When_Handler_Fails_Then_Event_Marked_InError(t *testing.T) {
	ctx := context.Background()
	factory := dbs.NewUoWFactory(testinfra.Pool)

	payload := `{"OrderID":"3f3c7f1e-8f37-4a7a-9a20-000000000001","CustomerName":"Wanjiru Kamau",` +
		`"CustomerEmail":"wanjiru@example.com","TemplateName":"storefront","Price":"1380.00","Currency":"KSH"}`
	var id uint64
	err := testinfra.Pool.QueryRow(ctx,
		"INSERT INTO market.outbox(event, status, payload, created_at) VALUES ($1,$2,$3,now()) RETURNING id",
		"OrderSubmitted", int(consts.Processing), []byte(payload)).Scan(&id)
	require.NoError(t, err)
	defer func() {
		_, _ = testinfra.Pool.Exec(ctx, "DELETE FROM market.outbox WHERE id = $1", id)
	}()

	poller := NewOutboxPoller(&application.Processors{
		SendMail: processors.NewSendMail(mail.NewMailServer(mail.NewMailConfig()), factory),
	}, factory, NewOutboxConfig())

	handleErr := poller.handleEvent(ctx, db.Outbox{
		ID:        id,
		Event:     "OrderSubmitted",
		Status:    int(consts.Processing),
		Payload:   json.RawMessage(payload),
		CreatedAt: time.Now(),
	})
	require.Error(t, handleErr)

	var status int
	require.NoError(t, testinfra.Pool.QueryRow(ctx,
		"SELECT status FROM market.outbox WHERE id = $1", id).Scan(&status))
	require.Equal(t, int(consts.InError), status)
}
