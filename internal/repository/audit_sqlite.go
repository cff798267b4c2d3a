package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"deposito626-api/internal/model"
)

// SQLiteAuditRepository appends admin action records to the store
// database.
type SQLiteAuditRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteAuditRepository wraps an opened store database.
func NewSQLiteAuditRepository(db *sql.DB) *SQLiteAuditRepository {
	return &SQLiteAuditRepository{db: db}
}

// Append records an admin action. details is marshalled to JSON; nil
// details stores an empty string.
func (r *SQLiteAuditRepository) Append(ctx context.Context, action string, details any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	detailsJSON := ""
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
		detailsJSON = string(data)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (action, details, created_at)
		VALUES (?, ?, datetime('now'))`, action, detailsJSON)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List returns a page of entries, newest first, plus the total count.
func (r *SQLiteAuditRepository) List(ctx context.Context, page, limit int) ([]model.AuditEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, details, created_at
		FROM audit_logs ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []model.AuditEntry{}
	for rows.Next() {
		var e model.AuditEntry
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &details, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if details.Valid {
			e.Details = details.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Ensure SQLiteAuditRepository implements AuditRepository
var _ AuditRepository = (*SQLiteAuditRepository)(nil)
