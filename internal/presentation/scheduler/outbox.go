package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/sitehatch/market-backend/internal/application"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/events"
	"github.com/sitehatch/market-backend/internal/infra/db"
	dbs "github.com/sitehatch/market-backend/pkg/db"
	"github.com/sitehatch/market-backend/pkg/env"
	"github.com/sitehatch/market-backend/pkg/interfaces"
)

type OutboxPoller struct {
	processors *application.Processors
	uowFactory *dbs.UOWFactory
	cfg        *OutboxConfig
	stop       chan struct{}
}

type OutboxConfig struct {
	limit    uint8
	interval uint16
}

func NewOutboxConfig() *OutboxConfig {
	limit, err := strconv.Atoi(env.GetEnv("SCHEDULER_LIMIT", "5"))
	if err != nil {
		limit = 5
	}

	interval, err := strconv.Atoi(env.GetEnv("SCHEDULER_INTERVAL", "5"))
	if err != nil {
		interval = 5
	}
	return &OutboxConfig{
		limit:    uint8(limit),
		interval: uint16(interval),
	}
}

func NewOutboxPoller(processors *application.Processors, uowFactory *dbs.UOWFactory, cfg *OutboxConfig) *OutboxPoller {
	return &OutboxPoller{processors: processors, uowFactory: uowFactory, cfg: cfg, stop: make(chan struct{})}
}

func (o *OutboxPoller) Start() {
	slog.Info("Starting outbox poller...")
	t := time.NewTimer(time.Duration(o.cfg.interval) * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	for {
		select {
		case <-t.C:
			o.pollTable(ctx)
			t = time.NewTimer(time.Duration(o.cfg.interval) * time.Second)
		case <-o.stop:
			slog.Info("Cancelling current execution")
			cancel()
			return
		}
	}
}

func (o *OutboxPoller) Stop() {
	close(o.stop)
}

func (o *OutboxPoller) pollTable(ctx context.Context) {
	uow := o.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		slog.Error("error in poller", "err", err)
		return
	}

	var pendingEvents int
	countQuery := "SELECT count(*) FROM market.outbox WHERE status = 0"
	err = tx.QueryRow(ctx, countQuery).Scan(&pendingEvents)
	if err != nil {
		slog.Error("error counting events", "err", err)
		_ = uow.Rollback()
		return
	}
	if pendingEvents == 0 {
		_ = uow.Rollback()
		slog.Debug("no events to process")
		return
	}

	query := "SELECT id, event, status, payload, created_at FROM market.outbox WHERE status = 0 ORDER BY created_at FOR NO KEY UPDATE LIMIT $1"
	rows, err := tx.Query(ctx, query, o.cfg.limit)
	if err != nil {
		slog.Error("error in poller", "err", err)
		_ = uow.Rollback()
		return
	}

	defer rows.Close()
	var eventsToProcess []db.Outbox
	var eventIDs []int64
	for rows.Next() {
		var event db.Outbox
		if err = rows.Scan(&event.ID, &event.Event, &event.Status, &event.Payload, &event.CreatedAt); err != nil {
			slog.Error("error in poller", "err", err)
			continue
		}
		eventIDs = append(eventIDs, int64(event.ID))
		eventsToProcess = append(eventsToProcess, event)
	}

	if err = rows.Err(); err != nil {
		slog.Error("error reading result sets", "err", err)
	}

	_, err = tx.Exec(ctx, "UPDATE market.outbox SET status = $1 WHERE id = ANY($2)", consts.Processing, eventIDs)
	if err != nil {
		slog.Error("error setting events status to processing", "err", err)
	}

	if err := uow.Commit(); err != nil {
		slog.Error("err committing", "err", err)
	}

	var wg sync.WaitGroup
	for _, event := range eventsToProcess {
		wg.Add(1)
		go func(ev db.Outbox) {
			defer wg.Done()
			if err := o.handleEvent(ctx, ev); err != nil {
				slog.Error("handler error", "event", ev.ID, "err", err)
			}
		}(event)
	}

	wg.Wait()
	slog.Debug("Finished poller thread processing")
}

func (o *OutboxPoller) handleEvent(ctx context.Context, outbox db.Outbox) error {
	var (
		uow    interfaces.UoW
		err    error
		status = consts.Processed
	)

	slog.Info("Handling event", "event", outbox.Event, "id", outbox.ID)

	switch outbox.Event {
	case events.OrderSubmitted{}.GetType():
		event := db.MapOutboxModelToOrderSubmitted(outbox)
		uow, err = o.processors.SendMail.Handle(ctx, event)
		if err != nil {
			var r errs.RetryableError
			if errors.As(err, &r) {
				slog.Warn("Mail delivery will be retried later")
				status = consts.NotProcessed
			} else {
				status = consts.InError
			}
		}
	default:
		slog.Error("no handler for event", "event", outbox.Event)
		status = consts.InError
	}

	if err != nil {
		slog.Error("error in handler", "event", outbox.Event, "id", outbox.ID, "err", err)
		// the handler's tx may be aborted, mark the status on a fresh one
		if uow != nil {
			_ = uow.Rollback()
			uow = nil
		}
	}

	if uow == nil {
		statusUow := o.uowFactory.GetUoW()
		if _, beginErr := statusUow.Begin(); beginErr != nil {
			return beginErr
		}
		uow = statusUow
	}

	tx := uow.(*dbs.UOW).Tx
	if _, markErr := tx.Exec(ctx, "UPDATE market.outbox SET status = $1 WHERE id = $2", status, outbox.ID); markErr != nil {
		_ = uow.Rollback()
		return markErr
	}
	if commitErr := uow.Commit(); commitErr != nil {
		return commitErr
	}

	return err
}
