package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the valid-category list when the category
// itself was the invalid input.
type ValidationErrorResponse struct {
	Error           string   `json:"error"`
	ValidCategories []string `json:"validCategories,omitempty"`
}

type TemplateView struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	PriceUSD     string `json:"priceUsd"`
	PriceEUR     string `json:"priceEur"`
	PriceGBP     string `json:"priceGbp"`
	PriceKSH     string `json:"priceKsh"`
	RatePerMonth string `json:"ratePerMonth"`
	RatePerPage  string `json:"ratePerPage"`
	PreviewLink  string `json:"previewLink"`
	ImageURL     string `json:"imageUrl"`
}

type CreateTemplateRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	PriceUSD     string `json:"priceUsd"`
	PriceEUR     string `json:"priceEur"`
	PriceGBP     string `json:"priceGbp"`
	PriceKSH     string `json:"priceKsh"`
	RatePerMonth string `json:"ratePerMonth"`
	RatePerPage  string `json:"ratePerPage"`
	PreviewLink  string `json:"previewLink"`
	ImageURL     string `json:"imageUrl"`
}

type CreateTemplateResponse struct {
	TemplateID uint64 `json:"templateId"`
}

// QuoteResponse echoes the client's seq token so rapid successive lookups can
// be applied last-issued-wins on the storefront.
type QuoteResponse struct {
	TemplateName string `json:"templateName"`
	Price        string `json:"price"`
	Currency     string `json:"currency"`
	Seq          uint64 `json:"seq"`
}

type SubmitOrderResponse struct {
	OrderID string `json:"orderId"`
}

type OrderView struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Category       string            `json:"category"`
	TemplateName   string            `json:"templateName"`
	Country        string            `json:"country"`
	Currency       string            `json:"currency"`
	Price          string            `json:"price"`
	DurationMonths int               `json:"durationMonths"`
	PageCount      int               `json:"pageCount"`
	ExtraPages     string            `json:"extraPages,omitempty"`
	DomainChoice   string            `json:"domainChoice"`
	DomainName     string            `json:"domainName,omitempty"`
	ThemeChoice    string            `json:"themeChoice"`
	CustomColor    string            `json:"customColor,omitempty"`
	SocialHandles  []string          `json:"socialHandles"`
	Message        string            `json:"message"`
	Extension      map[string]string `json:"extension"`
	FileURLs       []string          `json:"fileUrls"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type CategoryFieldView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	InputKind   string `json:"inputKind"`
	Placeholder string `json:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty"`
	Required    bool   `json:"required"`
}

type PostMessageRequest struct {
	SessionID string `json:"sessionId"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
}

type MessageView struct {
	ID        uint64    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type AssistRequest struct {
	Message       string   `json:"message"`
	Topic         string   `json:"topic"`
	KnowledgeBase []string `json:"knowledgeBase"`
}

type AssistResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type KnowledgeEntryView struct {
	ID        uint64    `json:"id"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateKnowledgeRequest struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

type CheckoutRequest struct {
	TemplateID uint64 `json:"templateId"`
	Country    string `json:"country"`
}

type CheckoutResponse struct {
	ClientSecret string `json:"clientSecret"`
}
