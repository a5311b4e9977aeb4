package events

import "time"

type OrderSubmitted struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	TemplateName  string
	Price         string
	Currency      string
	CreatedAt     time.Time
}

func (e OrderSubmitted) GetType() string {
	return "OrderSubmitted"
}
