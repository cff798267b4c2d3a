package model

import "time"

// OrderStatus tracks an order through the admin's manual workflow.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is the snapshot of a cart line at submission time.
type OrderItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Flavor    string  `json:"flavor,omitempty"`
	Size      string  `json:"size,omitempty"`
}

// Order is the persisted record of a checkout. Items are stored as a
// JSON snapshot; the order never references live product rows.
type Order struct {
	ID           int64       `json:"id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address,omitempty"`
	Items        []OrderItem `json:"items"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderStats is the admin dashboard aggregate. Revenue sums completed
// orders only.
type OrderStats struct {
	Completed   int     `json:"completed"`
	Cancelled   int     `json:"cancelled"`
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
}

// StoreStatus is the open/closed singleton shown on the storefront.
type StoreStatus struct {
	IsOpen         bool   `json:"is_open"`
	ClosingMessage string `json:"closing_message"`
}

// AuditEntry records an admin mutation. Details is free-form JSON.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
