package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/interfaces"
	"github.com/sitehatch/market-backend/internal/infra/db"
	shared "github.com/sitehatch/market-backend/pkg/interfaces"
)

type TemplateRepo struct {
	tx pgx.Tx
}

var _ interfaces.TemplateRepo = (*TemplateRepo)(nil)

func NewTemplateRepo(tx pgx.Tx) *TemplateRepo {
	return &TemplateRepo{tx: tx}
}

func (r *TemplateRepo) GetTemplateByID(ctx context.Context, id uint64) (*db.Template, error) {
	var t db.Template
	query := `SELECT id, name, category, price_usd, price_eur, price_gbp, price_ksh,
		rate_per_month, rate_per_page, preview_link, image_url, created_at
		FROM market.templates WHERE id = $1`
	err := r.tx.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Category,
		&t.PriceUSD, &t.PriceEUR, &t.PriceGBP, &t.PriceKSH,
		&t.RatePerMonth, &t.RatePerPage, &t.PreviewLink, &t.ImageURL, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TemplateRepo) ListTemplates(ctx context.Context, cat string) ([]db.Template, error) {
	query := `SELECT id, name, category, price_usd, price_eur, price_gbp, price_ksh,
		rate_per_month, rate_per_page, preview_link, image_url, created_at
		FROM market.templates`
	args := []any{}
	if cat != "" {
		query += " WHERE category = $1"
		args = append(args, cat)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("err listing templates, %v", err)
	}
	defer rows.Close()

	var templates []db.Template
	for rows.Next() {
		var t db.Template
		if err = rows.Scan(&t.ID, &t.Name, &t.Category,
			&t.PriceUSD, &t.PriceEUR, &t.PriceGBP, &t.PriceKSH,
			&t.RatePerMonth, &t.RatePerPage, &t.PreviewLink, &t.ImageURL, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *TemplateRepo) InsertTemplate(ctx context.Context, t db.Template) (uint64, error) {
	var id uint64
	err := r.tx.QueryRow(ctx, `INSERT INTO market.templates(name, category, price_usd, price_eur,
		price_gbp, price_ksh, rate_per_month, rate_per_page, preview_link, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id`,
		t.Name, t.Category, t.PriceUSD, t.PriceEUR, t.PriceGBP, t.PriceKSH,
		t.RatePerMonth, t.RatePerPage, t.PreviewLink, t.ImageURL, t.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("err inserting template, %v", err)
	}

	return id, nil
}

func (r *TemplateRepo) UpdateTemplate(ctx context.Context, t db.Template) error {
	tag, err := r.tx.Exec(ctx, `UPDATE market.templates SET name=$1, category=$2, price_usd=$3,
		price_eur=$4, price_gbp=$5, price_ksh=$6, rate_per_month=$7, rate_per_page=$8,
		preview_link=$9, image_url=$10 WHERE id = $11`,
		t.Name, t.Category, t.PriceUSD, t.PriceEUR, t.PriceGBP, t.PriceKSH,
		t.RatePerMonth, t.RatePerPage, t.PreviewLink, t.ImageURL, t.ID)
	if err != nil {
		return fmt.Errorf("err updating template, %v", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *TemplateRepo) DeleteTemplate(ctx context.Context, id uint64) error {
	_, err := r.tx.Exec(ctx, "DELETE FROM market.templates WHERE id = $1", id)
	return err
}

type OrderRepo struct {
	tx pgx.Tx
}

var _ interfaces.OrderRepo = (*OrderRepo)(nil)

func NewOrderRepo(tx pgx.Tx) *OrderRepo {
	return &OrderRepo{tx: tx}
}

func (r *OrderRepo) InsertOrder(ctx context.Context, order db.CustomRequest) error {
	handles, err := json.Marshal(order.SocialHandles)
	if err != nil {
		return fmt.Errorf("err marshalling social handles, %v", err)
	}
	fileURLs, err := json.Marshal(order.FileURLs)
	if err != nil {
		return fmt.Errorf("err marshalling file urls, %v", err)
	}
	_, err = r.tx.Exec(ctx, `INSERT INTO market.custom_requests(id, name, email, phone, category,
		template_name, country, currency, price, duration_months, page_count, extra_pages,
		domain_choice, domain_name, theme_choice, custom_color, social_handles, message,
		extension, file_urls, schema_version, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		order.ID, order.Name, order.Email, order.Phone, order.Category,
		order.TemplateName, order.Country, order.Currency, order.Price,
		order.DurationMonths, order.PageCount, order.ExtraPages,
		order.DomainChoice, order.DomainName, order.ThemeChoice, order.CustomColor,
		handles, order.Message, order.Extension, fileURLs, order.SchemaVersion, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("err inserting custom request, %v", err)
	}

	return nil
}

func (r *OrderRepo) ListOrders(ctx context.Context, limit int) ([]db.CustomRequest, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, name, email, phone, category, template_name, country,
		currency, price, duration_months, page_count, extra_pages, domain_choice, domain_name,
		theme_choice, custom_color, social_handles, message, extension, file_urls, schema_version,
		created_at FROM market.custom_requests ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("err listing orders, %v", err)
	}
	defer rows.Close()

	var orders []db.CustomRequest
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepo) GetOrderByID(ctx context.Context, id string) (*db.CustomRequest, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, name, email, phone, category, template_name, country,
		currency, price, duration_months, page_count, extra_pages, domain_choice, domain_name,
		theme_choice, custom_color, social_handles, message, extension, file_urls, schema_version,
		created_at FROM market.custom_requests WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	order, err := scanOrder(rows)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepo) DeleteOrder(ctx context.Context, id string) error {
	_, err := r.tx.Exec(ctx, "DELETE FROM market.custom_requests WHERE id = $1", id)
	return err
}

func scanOrder(rows pgx.Rows) (db.CustomRequest, error) {
	var order db.CustomRequest
	var handles, fileURLs []byte
	err := rows.Scan(&order.ID, &order.Name, &order.Email, &order.Phone, &order.Category,
		&order.TemplateName, &order.Country, &order.Currency, &order.Price,
		&order.DurationMonths, &order.PageCount, &order.ExtraPages,
		&order.DomainChoice, &order.DomainName, &order.ThemeChoice, &order.CustomColor,
		&handles, &order.Message, &order.Extension, &fileURLs, &order.SchemaVersion, &order.CreatedAt)
	if err != nil {
		return order, err
	}
	if err = json.Unmarshal(handles, &order.SocialHandles); err != nil {
		return order, fmt.Errorf("err unmarshalling social handles, %v", err)
	}
	if err = json.Unmarshal(fileURLs, &order.FileURLs); err != nil {
		return order, fmt.Errorf("err unmarshalling file urls, %v", err)
	}

	return order, nil
}

type MessageRepo struct {
	tx pgx.Tx
}

func NewMessageRepo(tx pgx.Tx) *MessageRepo {
	return &MessageRepo{tx: tx}
}

func (r *MessageRepo) InsertMessage(ctx context.Context, msg db.Message) (uint64, error) {
	var id uint64
	err := r.tx.QueryRow(ctx, `INSERT INTO market.messages(session_id, sender, content, created_at)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		msg.SessionID, msg.Sender, msg.Content, msg.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("err inserting message, %v", err)
	}

	return id, nil
}

func (r *MessageRepo) ListMessages(ctx context.Context, sessionID string) ([]db.Message, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, session_id, sender, content, created_at
		FROM market.messages WHERE session_id = $1 ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("err listing messages, %v", err)
	}
	defer rows.Close()

	var messages []db.Message
	for rows.Next() {
		var msg db.Message
		if err = rows.Scan(&msg.ID, &msg.SessionID, &msg.Sender, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

type KnowledgeRepo struct {
	tx pgx.Tx
}

func NewKnowledgeRepo(tx pgx.Tx) *KnowledgeRepo {
	return &KnowledgeRepo{tx: tx}
}

func (r *KnowledgeRepo) InsertEntry(ctx context.Context, entry db.KnowledgeEntry) (uint64, error) {
	var id uint64
	err := r.tx.QueryRow(ctx, `INSERT INTO market.knowledge(topic, content, created_at)
		VALUES ($1,$2,$3) RETURNING id`, entry.Topic, entry.Content, entry.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("err inserting knowledge entry, %v", err)
	}

	return id, nil
}

func (r *KnowledgeRepo) ListEntries(ctx context.Context, topic string) ([]db.KnowledgeEntry, error) {
	query := "SELECT id, topic, content, created_at FROM market.knowledge"
	args := []any{}
	if topic != "" {
		query += " WHERE topic = $1"
		args = append(args, topic)
	}
	query += " ORDER BY created_at"

	rows, err := r.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("err listing knowledge, %v", err)
	}
	defer rows.Close()

	var entries []db.KnowledgeEntry
	for rows.Next() {
		var e db.KnowledgeEntry
		if err = rows.Scan(&e.ID, &e.Topic, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *KnowledgeRepo) DeleteEntry(ctx context.Context, id uint64) error {
	_, err := r.tx.Exec(ctx, "DELETE FROM market.knowledge WHERE id = $1", id)
	return err
}

type EventRepo struct {
	tx pgx.Tx
}

var _ interfaces.EventRepo = (*EventRepo)(nil)

func NewEventRepo(tx pgx.Tx) *EventRepo {
	return &EventRepo{tx: tx}
}

func (e *EventRepo) InsertEvent(ctx context.Context, event shared.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("err marshalling event payload, %v", err)
	}
	outbox := db.Outbox{
		Event:     event.GetType(),
		Status:    int(consts.NotProcessed),
		Payload:   json.RawMessage(payload),
		CreatedAt: time.Now(),
	}
	_, err = e.tx.Exec(ctx, "INSERT INTO market.outbox (event, status, payload, created_at) VALUES ($1,$2,$3,$4)",
		outbox.Event, outbox.Status, outbox.Payload, outbox.CreatedAt)
	if err != nil {
		return fmt.Errorf("err inserting a new event, %v", err)
	}

	return nil
}
