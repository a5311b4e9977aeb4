package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Template struct {
	ID           uint64          `db:"id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	PriceUSD     decimal.Decimal `db:"price_usd"`
	PriceEUR     decimal.Decimal `db:"price_eur"`
	PriceGBP     decimal.Decimal `db:"price_gbp"`
	PriceKSH     decimal.Decimal `db:"price_ksh"`
	RatePerMonth decimal.Decimal `db:"rate_per_month"`
	RatePerPage  decimal.Decimal `db:"rate_per_page"`
	PreviewLink  string          `db:"preview_link"`
	ImageURL     string          `db:"image_url"`
	CreatedAt    time.Time       `db:"created_at"`
}

// BasePrice selects the template's flat price for a currency code.
// Unknown currencies fall back to USD.
func (t Template) BasePrice(currency string) decimal.Decimal {
	switch currency {
	case "KSH":
		return t.PriceKSH
	case "EUR":
		return t.PriceEUR
	case "GBP":
		return t.PriceGBP
	default:
		return t.PriceUSD
	}
}

type CustomRequest struct {
	ID             uuid.UUID       `db:"id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Category       string          `db:"category"`
	TemplateName   string          `db:"template_name"`
	Country        string          `db:"country"`
	Currency       string          `db:"currency"`
	Price          decimal.Decimal `db:"price"`
	DurationMonths int             `db:"duration_months"`
	PageCount      int             `db:"page_count"`
	ExtraPages     string          `db:"extra_pages"`
	DomainChoice   string          `db:"domain_choice"`
	DomainName     string          `db:"domain_name"`
	ThemeChoice    string          `db:"theme_choice"`
	CustomColor    string          `db:"custom_color"`
	SocialHandles  []string        `db:"social_handles"`
	Message        string          `db:"message"`
	Extension      json.RawMessage `db:"extension"`
	FileURLs       []string        `db:"file_urls"`
	SchemaVersion  int             `db:"schema_version"`
	CreatedAt      time.Time       `db:"created_at"`
}

type Message struct {
	ID        uint64    `db:"id"`
	SessionID string    `db:"session_id"`
	Sender    string    `db:"sender"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type KnowledgeEntry struct {
	ID        uint64    `db:"id"`
	Topic     string    `db:"topic"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type Outbox struct {
	ID        uint64          `db:"id"`
	Event     string          `db:"event"`
	Status    int             `db:"status"`
	Payload   json.RawMessage `db:"payload"`
	CreatedAt time.Time       `db:"created_at"`
}

type Mail struct {
	ID         uint64    `db:"id"`
	MailType   string    `db:"type"`
	Recipients string    `db:"recipients"`
	Subject    string    `db:"subject"`
	Content    string    `db:"content"`
	SentAt     time.Time `db:"sent_at"`
}
