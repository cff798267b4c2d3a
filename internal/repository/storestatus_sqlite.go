package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"deposito626-api/internal/model"
)

// SQLiteStoreStatusRepository implements the open/closed singleton row.
type SQLiteStoreStatusRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStoreStatusRepository wraps an opened store database.
func NewSQLiteStoreStatusRepository(db *sql.DB) *SQLiteStoreStatusRepository {
	return &SQLiteStoreStatusRepository{db: db}
}

// Get returns the current status. A missing row reads as closed with the
// default message, matching the storefront's safe fallback.
func (r *SQLiteStoreStatusRepository) Get(ctx context.Context) (*model.StoreStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var status model.StoreStatus
	var isOpen int
	err := r.db.QueryRowContext(ctx,
		`SELECT is_open, closing_message FROM store_settings WHERE id = 1`).
		Scan(&isOpen, &status.ClosingMessage)
	if err == sql.ErrNoRows {
		return &model.StoreStatus{IsOpen: false, ClosingMessage: "Store Closed"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store status: %w", err)
	}

	status.IsOpen = isOpen != 0
	return &status, nil
}

// Update upserts the singleton row.
func (r *SQLiteStoreStatusRepository) Update(ctx context.Context, status model.StoreStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	isOpen := 0
	if status.IsOpen {
		isOpen = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_settings (id, is_open, closing_message)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_open = excluded.is_open,
			closing_message = excluded.closing_message`,
		isOpen, status.ClosingMessage)
	if err != nil {
		return fmt.Errorf("failed to update store status: %w", err)
	}
	return nil
}

// Ensure SQLiteStoreStatusRepository implements StoreStatusRepository
var _ StoreStatusRepository = (*SQLiteStoreStatusRepository)(nil)
