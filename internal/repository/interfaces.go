package repository

import (
	"context"
	"errors"
	"time"

	"deposito626-api/internal/model"
)

// ErrOrderNotFound is returned when a status update targets a missing
// order.
var ErrOrderNotFound = errors.New("order not found")

// ProductRepository defines catalog data access.
type ProductRepository interface {
	// List returns all products ordered by name.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID returns a product or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Upsert inserts or updates a product. A zero ID inserts and the
	// generated ID is written back.
	Upsert(ctx context.Context, p *model.Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines order persistence and statistics.
type OrderRepository interface {
	// Create persists a new order and writes back its generated ID.
	Create(ctx context.Context, o *model.Order) error

	// List returns all orders, newest first.
	List(ctx context.Context) ([]model.Order, error)

	// UpdateStatus moves an order through the admin workflow.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error

	// GetStats returns counts and completed-order revenue.
	GetStats(ctx context.Context) (*model.OrderStats, error)

	// CancelStalePending cancels pending orders older than threshold.
	CancelStalePending(ctx context.Context, threshold time.Duration) (int64, error)
}

// StoreStatusRepository defines the open/closed singleton.
type StoreStatusRepository interface {
	// Get returns the status; a missing row reads as closed.
	Get(ctx context.Context) (*model.StoreStatus, error)

	// Update upserts the singleton row.
	Update(ctx context.Context, status model.StoreStatus) error
}

// AuditRepository appends and lists admin action records.
type AuditRepository interface {
	// Append records an admin action; details is marshalled to JSON.
	Append(ctx context.Context, action string, details any) error

	// List returns a page of entries, newest first, plus the total count.
	List(ctx context.Context, page, limit int) ([]model.AuditEntry, int64, error)
}

// MemberRepository is the verified-members allowlist lookup.
type MemberRepository interface {
	// Exists reports whether the normalized phone number is allowlisted.
	Exists(ctx context.Context, phoneNumber string) (bool, error)
}
