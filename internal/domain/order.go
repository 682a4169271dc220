package domain

import "time"

// Order statuses. Orders placed through checkout start as pending.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order, snapshotted from the cart at checkout completion.
type Order struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Status    string     `json:"status"`
	Subtotal  int64      `json:"subtotal"`
	Shipping  int64      `json:"shipping"`
	Total     int64      `json:"total"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
}
