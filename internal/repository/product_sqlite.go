package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"deposito626-api/internal/model"
)

// SQLiteProductRepository implements ProductRepository on the store
// database. Sizes, flavors, and the flavor-stock map are stored as JSON
// columns.
type SQLiteProductRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteProductRepository wraps an opened store database.
func NewSQLiteProductRepository(db *sql.DB) *SQLiteProductRepository {
	return &SQLiteProductRepository{db: db}
}

const productColumns = `id, name, description, price, image_url, stock_status, category,
	available_sizes, available_flavors, flavor_stock, stock_quantity`

// List returns all products ordered by name.
func (r *SQLiteProductRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetByID returns one product, or nil when absent.
func (r *SQLiteProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var sizesJSON, flavorsJSON, stockJSON string

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.StockStatus, &p.Category, &sizesJSON, &flavorsJSON, &stockJSON, &p.StockQuantity)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if err := json.Unmarshal([]byte(sizesJSON), &p.AvailableSizes); err != nil {
		return nil, fmt.Errorf("failed to decode sizes for product %d: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(flavorsJSON), &p.AvailableFlavors); err != nil {
		return nil, fmt.Errorf("failed to decode flavors for product %d: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(stockJSON), &p.FlavorStock); err != nil {
		return nil, fmt.Errorf("failed to decode flavor stock for product %d: %w", p.ID, err)
	}
	return &p, nil
}

// Upsert inserts (zero ID) or updates a product and writes back the
// generated ID on insert.
func (r *SQLiteProductRepository) Upsert(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sizesJSON, err := json.Marshal(orEmptySlice(p.AvailableSizes))
	if err != nil {
		return fmt.Errorf("failed to encode sizes: %w", err)
	}
	flavorsJSON, err := json.Marshal(orEmptySlice(p.AvailableFlavors))
	if err != nil {
		return fmt.Errorf("failed to encode flavors: %w", err)
	}
	stockJSON, err := json.Marshal(orEmptyMap(p.FlavorStock))
	if err != nil {
		return fmt.Errorf("failed to encode flavor stock: %w", err)
	}

	if p.ID == 0 {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO products (name, description, price, image_url, stock_status, category,
				available_sizes, available_flavors, flavor_stock, stock_quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.Price, p.ImageURL, p.StockStatus, p.Category,
			string(sizesJSON), string(flavorsJSON), string(stockJSON), p.StockQuantity)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		p.ID, err = result.LastInsertId()
		if err != nil {
			return err
		}
		return nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, image_url, stock_status, category,
			available_sizes, available_flavors, flavor_stock, stock_quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			image_url = excluded.image_url,
			stock_status = excluded.stock_status,
			category = excluded.category,
			available_sizes = excluded.available_sizes,
			available_flavors = excluded.available_flavors,
			flavor_stock = excluded.flavor_stock,
			stock_quantity = excluded.stock_quantity`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.StockStatus, p.Category,
		string(sizesJSON), string(flavorsJSON), string(stockJSON), p.StockQuantity)
	if err != nil {
		return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
	}
	return nil
}

// Delete removes a product by id.
func (r *SQLiteProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// Ensure SQLiteProductRepository implements ProductRepository
var _ ProductRepository = (*SQLiteProductRepository)(nil)
