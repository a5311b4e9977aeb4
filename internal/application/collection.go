package application

import (
	"github.com/sitehatch/market-backend/internal/application/commands/chat"
	"github.com/sitehatch/market-backend/internal/application/commands/knowledge"
	"github.com/sitehatch/market-backend/internal/application/commands/order"
	"github.com/sitehatch/market-backend/internal/application/commands/payment"
	"github.com/sitehatch/market-backend/internal/application/commands/template"
	"github.com/sitehatch/market-backend/internal/application/processors"
	"github.com/sitehatch/market-backend/internal/application/query"
)

// Handlers wires every use case the REST layer exposes.
type Handlers struct {
	SubmitOrder    *order.SubmitOrder
	DeleteOrder    *order.DeleteOrder
	CreateTemplate *template.CreateTemplate
	UpdateTemplate *template.UpdateTemplate
	DeleteTemplate *template.DeleteTemplate
	Knowledge      *knowledge.Knowledge
	PostMessage    *chat.PostMessage
	Assist         *chat.Assist
	Checkout       *payment.Checkout
	GetQuote       *query.GetQuote
	ListTemplates  *query.ListTemplates
	GetOrders      *query.GetOrders
	GetMessages    *query.GetMessages
}

// Processors handle outbox events off the request path.
type Processors struct {
	SendMail *processors.SendMail
}
