package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"deposito626-api/internal/model"
)

// SQLiteOrderRepository implements OrderRepository on the store
// database. Items are stored as a JSON snapshot, never joined against
// live product rows.
type SQLiteOrderRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteOrderRepository wraps an opened store database.
func NewSQLiteOrderRepository(db *sql.DB) *SQLiteOrderRepository {
	return &SQLiteOrderRepository{db: db}
}

// Create persists a new order and writes back its generated ID.
func (r *SQLiteOrderRepository) Create(ctx context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	if o.Status == "" {
		o.Status = model.OrderPending
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (customer_name, phone, address, items, total_amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))`,
		o.CustomerName, o.Phone, o.Address, string(itemsJSON), o.TotalAmount, o.Status)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.ID, err = result.LastInsertId()
	return err
}

// List returns all orders, newest first.
func (r *SQLiteOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, phone, address, items, total_amount, status, created_at
		FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		var itemsJSON string
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Phone, &o.Address,
			&itemsJSON, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items for order %d: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus moves an order through the admin workflow.
func (r *SQLiteOrderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}
	return nil
}

// GetStats returns counts per status and revenue over completed orders.
func (r *SQLiteOrderRepository) GetStats(ctx context.Context) (*model.OrderStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &model.OrderStats{}

	var revenue sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ?`,
		model.OrderCompleted).Scan(&stats.Completed, &revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed orders: %w", err)
	}
	if revenue.Valid {
		stats.Revenue = revenue.Float64
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = ?`,
		model.OrderCancelled).Scan(&stats.Cancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to count cancelled orders: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&stats.TotalOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return stats, nil
}

// CancelStalePending cancels pending orders older than the threshold.
// Customers who never followed through in the DM leave these behind.
func (r *SQLiteOrderRepository) CancelStalePending(ctx context.Context, threshold time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// created_at is written by datetime('now'); do the comparison in
	// SQLite's own text format to avoid layout mismatches.
	modifier := fmt.Sprintf("-%d seconds", int64(threshold.Seconds()))

	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = ? WHERE status = ? AND created_at < datetime('now', ?)`,
		model.OrderCancelled, model.OrderPending, modifier)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel stale orders: %w", err)
	}

	cancelled, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if cancelled > 0 {
		log.Printf("[SQLite] Cancelled %d stale pending orders (threshold: %v)", cancelled, threshold)
	}
	return cancelled, nil
}

// Ensure SQLiteOrderRepository implements OrderRepository
var _ OrderRepository = (*SQLiteOrderRepository)(nil)
