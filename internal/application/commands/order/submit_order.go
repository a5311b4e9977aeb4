package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/events"
	"github.com/sitehatch/market-backend/internal/application/interfaces"
	"github.com/sitehatch/market-backend/internal/domain/country"
	"github.com/sitehatch/market-backend/internal/domain/pricing"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

// SubmitOrder runs the whole submission pipeline: validate, upload the file
// batch, recompute the price against the stored template, persist one
// custom_requests row plus the confirmation-mail outbox event. There is no
// partial-resume state; a failed submission is retried from scratch by the
// customer.
type SubmitOrder struct {
	uowFactory *dbs.UOWFactory
	batch      *UploadBatch
	store      interfaces.ObjectStore
	guard      interfaces.SubmitGuard
}

func NewSubmitOrder(factory *dbs.UOWFactory, store interfaces.ObjectStore, guard interfaces.SubmitGuard, uploadPrefix string) *SubmitOrder {
	return &SubmitOrder{
		uowFactory: factory,
		batch:      NewUploadBatch(store, uploadPrefix),
		store:      store,
		guard:      guard,
	}
}

func (c *SubmitOrder) Execute(ctx context.Context, req *SubmitOrderRequest) (uuid.UUID, error) {
	if c.guard != nil && req.SubmissionToken != "" {
		ok, err := c.guard.Acquire(ctx, req.SubmissionToken)
		if err != nil {
			slog.Error("submit guard unavailable, continuing without it", "err", err)
		} else if !ok {
			return uuid.Nil, errs.ValidationError{Err: fmt.Errorf("submission already in progress")}
		} else {
			defer c.guard.Release(ctx, req.SubmissionToken)
		}
	}

	if err := Validate(req); err != nil {
		return uuid.Nil, err
	}

	submittedAt := time.Now()
	uploaded, err := c.batch.Run(ctx, submittedAt, req.Files)
	if err != nil {
		// objects written before the failure stay behind in storage
		return uuid.Nil, err
	}

	orderID, err := c.persist(ctx, req, uploaded.URLs, submittedAt)
	if err != nil {
		c.compensate(ctx, uploaded.Keys)
		return uuid.Nil, err
	}

	return orderID, nil
}

func (c *SubmitOrder) persist(ctx context.Context, req *SubmitOrderRequest, fileURLs []string, submittedAt time.Time) (orderID uuid.UUID, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return uuid.Nil, errs.PersistError{Err: err}
	}
	defer uow.Finalize(&err)

	template, err := repo.NewTemplateRepo(tx).GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = errs.LookupError{Err: fmt.Errorf("template %d does not exist", req.TemplateID)}
			return uuid.Nil, err
		}
		err = errs.LookupError{Err: err}
		return uuid.Nil, err
	}

	// currency and price are derived here, never taken from the request
	resolved := country.Resolve(req.Country)
	price := pricing.Quote(
		template.BasePrice(resolved.Currency),
		template.RatePerMonth.Mul(resolved.RateMultiplier),
		template.RatePerPage.Mul(resolved.RateMultiplier),
		req.DurationMonths,
		req.PageCount,
	)

	extension, err := json.Marshal(categoryExtension(req))
	if err != nil {
		err = errs.PersistError{Err: fmt.Errorf("err marshalling extension fields, %v", err)}
		return uuid.Nil, err
	}

	orderID = uuid.New()
	record := db.CustomRequest{
		ID:             orderID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Category:       req.Category,
		TemplateName:   template.Name,
		Country:        resolved.Code,
		Currency:       resolved.Currency,
		Price:          price,
		DurationMonths: normalizedMonths(req.DurationMonths),
		PageCount:      normalizedPages(req.PageCount),
		ExtraPages:     req.ExtraPages,
		DomainChoice:   req.DomainChoice,
		DomainName:     req.DomainName,
		ThemeChoice:    req.ThemeChoice,
		CustomColor:    req.CustomColor,
		SocialHandles:  req.SocialHandles,
		Message:        req.Message,
		Extension:      extension,
		FileURLs:       fileURLs,
		SchemaVersion:  consts.OrderSchemaVersion,
		CreatedAt:      submittedAt,
	}
	if err = repo.NewOrderRepo(tx).InsertOrder(ctx, record); err != nil {
		err = errs.PersistError{Err: err}
		return uuid.Nil, err
	}

	submitted := events.OrderSubmitted{
		OrderID:       orderID.String(),
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		TemplateName:  template.Name,
		Price:         price.StringFixed(2),
		Currency:      resolved.Currency,
	}
	if err = repo.NewEventRepo(tx).InsertEvent(ctx, submitted); err != nil {
		err = errs.PersistError{Err: err}
		return uuid.Nil, err
	}

	return orderID, err
}

// compensate issues a best-effort delete of the uploaded objects after a
// failed insert.
func (c *SubmitOrder) compensate(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := c.store.DeleteObjects(ctx, keys); err != nil {
		slog.Error("err cleaning up uploads after failed insert", "keys", len(keys), "err", err)
	}
}

func normalizedMonths(months int) int {
	if months < 1 {
		return pricing.DefaultMonths
	}
	return months
}

func normalizedPages(pages int) int {
	if pages < 1 {
		return pricing.DefaultPages
	}
	return pages
}
