package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// MySQLMemberRepository implements the verified-members allowlist lookup
// against MySQL. The members table is managed out of band (the business
// adds numbers manually); this service only reads it.
type MySQLMemberRepository struct {
	db *sql.DB
}

// NewMySQLMemberRepository creates a MySQL-backed allowlist.
func NewMySQLMemberRepository(db *sql.DB) *MySQLMemberRepository {
	return &MySQLMemberRepository{db: db}
}

// Exists reports whether the normalized phone number has a
// verified-member record.
func (r *MySQLMemberRepository) Exists(ctx context.Context, phoneNumber string) (bool, error) {
	query := `SELECT 1 FROM verified_members WHERE phone_number = ? LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, phoneNumber).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up member: %w", err)
	}
	return true, nil
}

// Add inserts a verified member, ignoring duplicates. Used by the admin
// surface and seed tooling.
func (r *MySQLMemberRepository) Add(ctx context.Context, phoneNumber string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO verified_members (phone_number) VALUES (?)`, phoneNumber)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	log.Printf("[MemberRepository] Added verified member %s", phoneNumber)
	return nil
}

// Ensure MySQLMemberRepository implements MemberRepository
var _ MemberRepository = (*MySQLMemberRepository)(nil)
