package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/store"
)

type Handler struct {
	store *store.Pg
}

func NewHandler(db *store.Pg) *Handler {
	return &Handler{store: db}
}

// HandleOrderPlaced acknowledges a freshly placed order by moving it from
// Pending to Confirmed.
func (h *Handler) HandleOrderPlaced(ctx context.Context, msg []byte) error {
	var event models.OrderPlacedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	if err := h.store.ConfirmOrder(ctx, event.OrderID); err != nil {
		return err
	}

	slog.Info("order confirmed", "order_id", event.OrderID, "user_id", event.UserID, "total", event.Total)

	return nil
}
