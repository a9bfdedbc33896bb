package models

// OrderPlacedEvent is published to NATS after an order's rows commit and
// consumed by the kitchen service.
type OrderPlacedEvent struct {
	OrderID uint64  `json:"order_id"`
	UserID  uint64  `json:"user_id"`
	Total   float64 `json:"total"`
}
