package repo_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sitehatch/market-backend/internal/application/commands/order"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/query"
	"github.com/sitehatch/market-backend/internal/infra/db"
	"github.com/sitehatch/market-backend/internal/infra/db/repo"
	"github.com/sitehatch/market-backend/internal/testinfra"
	dbs "github.com/sitehatch/market-backend/pkg/db"
)

func newTemplate(name string) db.Template {
	return db.Template{
		Name:         name,
		Category:     "business",
		PriceUSD:     decimal.NewFromInt(8),
		PriceEUR:     decimal.NewFromInt(7),
		PriceGBP:     decimal.NewFromInt(6),
		PriceKSH:     decimal.NewFromInt(1000),
		RatePerMonth: decimal.NewFromInt(50),
		RatePerPage:  decimal.NewFromInt(10),
		PreviewLink:  "https://preview.test/" + name,
		ImageURL:     "https://img.test/" + name + ".png",
		CreatedAt:    time.Now(),
	}
}

func TestTemplateRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	uow := dbs.NewUoWFactory(testinfra.Pool).GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer func() { _ = uow.Rollback() }()

	templates := repo.NewTemplateRepo(tx)

	id, err := templates.InsertTemplate(ctx, newTemplate("repo-roundtrip"))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := templates.GetTemplateByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "repo-roundtrip", got.Name)
	assert.True(t, got.PriceKSH.Equal(decimal.NewFromInt(1000)), "price_ksh = %s", got.PriceKSH)
	assert.True(t, got.RatePerMonth.Equal(decimal.NewFromInt(50)))

	got.Category = "portfolio"
	require.NoError(t, templates.UpdateTemplate(ctx, *got))

	listed, err := templates.ListTemplates(ctx, "portfolio")
	require.NoError(t, err)
	names := make([]string, 0, len(listed))
	for _, tmpl := range listed {
		names = append(names, tmpl.Name)
	}
	assert.Contains(t, names, "repo-roundtrip")

	require.NoError(t, templates.DeleteTemplate(ctx, id))
	_, err = templates.GetTemplateByID(ctx, id)
	assert.Error(t, err)
}

func TestOrderRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	uow := dbs.NewUoWFactory(testinfra.Pool).GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer func() { _ = uow.Rollback() }()

	orders := repo.NewOrderRepo(tx)

	record := db.CustomRequest{
		ID:             uuid.New(),
		Name:           "Wanjiru Kamau",
		Email:          "wanjiru@example.com",
		Phone:          "+254700000000",
		Category:       "business",
		TemplateName:   "storefront",
		Country:        "KE",
		Currency:       "KSH",
		Price:          decimal.RequireFromString("1380.00"),
		DurationMonths: 6,
		PageCount:      8,
		ExtraPages:     "gallery, FAQ, contacts",
		DomainChoice:   "registered-for-me",
		ThemeChoice:    "default",
		SocialHandles:  []string{"@wanjiru", "@kamau.biz"},
		Message:        "launch before the trade fair",
		Extension:      json.RawMessage(`{"business_name":"Kamau Traders"}`),
		FileURLs:       []string{"https://cdn.test/logo.png"},
		SchemaVersion:  consts.OrderSchemaVersion,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, orders.InsertOrder(ctx, record))

	got, err := orders.GetOrderByID(ctx, record.ID.String())
	require.NoError(t, err)
	assert.Equal(t, record.Name, got.Name)
	assert.Equal(t, "KSH", got.Currency)
	assert.True(t, got.Price.Equal(record.Price), "price = %s", got.Price)
	assert.Equal(t, record.SocialHandles, got.SocialHandles)
	assert.Equal(t, record.FileURLs, got.FileURLs)
	assert.JSONEq(t, string(record.Extension), string(got.Extension))

	listed, err := orders.ListOrders(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, listed)

	require.NoError(t, orders.DeleteOrder(ctx, record.ID.String()))
	_, err = orders.GetOrderByID(ctx, record.ID.String())
	assert.Error(t, err)
}

type fakeStore struct {
	uploads []string
	deleted []string
}

func (s *fakeStore) UploadFile(_ context.Context, key string, _ *string, body io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	s.uploads = append(s.uploads, key)
	return "https://cdn.test/" + key, nil
}

func (s *fakeStore) DeleteObjects(_ context.Context, keys []string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

func submitRequest(templateID uint64) *order.SubmitOrderRequest {
	return &order.SubmitOrderRequest{
		Name:           "Wanjiru Kamau",
		Email:          "wanjiru@example.com",
		Phone:          "+254700000000",
		Category:       "business",
		TemplateID:     templateID,
		Country:        "KE",
		DurationMonths: 6,
		PageCount:      8,
		ExtraPages:     "gallery, FAQ, contacts",
		Form: map[string]string{
			"business_name": "Kamau Traders",
			"business_type": "retail",
		},
		Files: pendingFiles(),
	}
}

func pendingFiles() []order.PendingFile {
	return []order.PendingFile{
		{Role: consts.FileRoleMedia, Name: "shop front.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpg")},
		{Role: consts.FileRoleLogo, Name: "logo.png", ContentType: "image/png", Content: strings.NewReader("png")},
		{Role: consts.FileRoleOther, Name: "notes.pdf", ContentType: "application/pdf", Content: strings.NewReader("pdf")},
	}
}

func TestSubmitOrderPersistsQuoteAndOutboxEvent(t *testing.T) {
	ctx := context.Background()
	factory := dbs.NewUoWFactory(testinfra.Pool)

	uow := factory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	templateID, err := repo.NewTemplateRepo(tx).InsertTemplate(ctx, newTemplate("submit-happy-path"))
	require.NoError(t, err)
	require.NoError(t, uow.Commit())
	defer func() {
		_, _ = testinfra.Pool.Exec(ctx, "DELETE FROM market.templates WHERE id = $1", templateID)
	}()

	store := &fakeStore{}
	cmd := order.NewSubmitOrder(factory, store, nil, "uploads/")

	orderID, err := cmd.Execute(ctx, submitRequest(templateID))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, orderID)
	defer func() {
		_, _ = testinfra.Pool.Exec(ctx, "DELETE FROM market.custom_requests WHERE id = $1", orderID)
	}()

	var (
		price    decimal.Decimal
		currency string
		rawURLs  []byte
	)
	err = testinfra.Pool.QueryRow(ctx,
		"SELECT price, currency, file_urls FROM market.custom_requests WHERE id = $1", orderID).
		Scan(&price, &currency, &rawURLs)
	require.NoError(t, err)

	// 1000 + 50*6 + 10*8 at multiplier 1
	assert.Equal(t, "1380.00", price.StringFixed(2))
	assert.Equal(t, "KSH", currency)

	var urls []string
	require.NoError(t, json.Unmarshal(rawURLs, &urls))
	require.Len(t, urls, 3)
	assert.Contains(t, urls[0], "logo.png", "logo is uploaded first regardless of form order")
	assert.Contains(t, urls[1], "shop-front.jpg")
	assert.Contains(t, urls[2], "notes.pdf")

	var outboxCount int
	err = testinfra.Pool.QueryRow(ctx,
		"SELECT count(*) FROM market.outbox WHERE event = $1 AND payload->>'OrderID' = $2",
		"OrderSubmitted", orderID.String()).Scan(&outboxCount)
	require.NoError(t, err)
	assert.Equal(t, 1, outboxCount, "submission writes its mail event in the same tx")
	assert.Empty(t, store.deleted)
}

func TestGetQuoteUnknownTemplateDegradesToZeroQuote(t *testing.T) {
	ctx := context.Background()
	q := query.NewGetQuote(dbs.NewUoWFactory(testinfra.Pool))

	// a deleted or never-existing template is not an error for the storefront
	resp, err := q.Query(ctx, 424_242_424, "KE", 6, 8, 17)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "0.00", resp.Price)
	assert.Empty(t, resp.Currency)
	assert.Equal(t, uint64(17), resp.Seq, "seq token is echoed even on a miss")
}

func TestSubmitOrderUnknownTemplateDeletesUploads(t *testing.T) {
	ctx := context.Background()
	factory := dbs.NewUoWFactory(testinfra.Pool)

	store := &fakeStore{}
	cmd := order.NewSubmitOrder(factory, store, nil, "uploads/")

	_, err := cmd.Execute(ctx, submitRequest(999_999_999))
	require.Error(t, err)
	var lookupErr errs.LookupError
	assert.ErrorAs(t, err, &lookupErr)

	// uploads ran before the lookup, so the compensation has to remove them
	assert.Len(t, store.uploads, 3)
	assert.Equal(t, store.uploads, store.deleted)

	var count int
	require.NoError(t, testinfra.Pool.QueryRow(ctx,
		"SELECT count(*) FROM market.custom_requests WHERE email = $1", "wanjiru@example.com").Scan(&count))
	assert.Zero(t, count, fmt.Sprintf("no order row may survive a failed lookup, found %d", count))
}
