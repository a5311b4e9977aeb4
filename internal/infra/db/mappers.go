package db

import (
	"encoding/json"
	"log/slog"

	"github.com/sitehatch/market-backend/internal/application/events"
)

func MapOutboxModelToOrderSubmitted(outbox Outbox) events.OrderSubmitted {
	var orderSubmitted events.OrderSubmitted
	if err := json.Unmarshal(outbox.Payload, &orderSubmitted); err != nil {
		slog.Error("error unmarshaling event", "err", err)
		return events.OrderSubmitted{}
	}
	orderSubmitted.CreatedAt = outbox.CreatedAt

	return orderSubmitted
}
