package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"deposito626-api/internal/cache"
	"deposito626-api/internal/model"
	"deposito626-api/internal/repository"
)

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService handles product catalog and store status logic for both
// the public storefront and the admin surface. Reads go through the
// cache; admin writes invalidate it and append audit entries.
type CatalogService struct {
	productRepo repository.ProductRepository
	statusRepo  repository.StoreStatusRepository
	auditRepo   repository.AuditRepository
	cache       cache.Cache
}

// NewCatalogService creates a catalog service. Returns nil if
// productRepo is nil (required dependency); auditRepo and cache are
// optional.
func NewCatalogService(
	productRepo repository.ProductRepository,
	statusRepo repository.StoreStatusRepository,
	auditRepo repository.AuditRepository,
	c cache.Cache,
) *CatalogService {
	if productRepo == nil {
		return nil
	}
	return &CatalogService{
		productRepo: productRepo,
		statusRepo:  statusRepo,
		auditRepo:   auditRepo,
		cache:       c,
	}
}

// ListProducts returns the catalog, read through the cache when one is
// configured.
func (s *CatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	if s.cache == nil {
		return s.productRepo.List(ctx)
	}

	data, err := s.cache.GetOrSet(ctx, catalogCacheKey, catalogCacheTTL, func() ([]byte, error) {
		products, err := s.productRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(products)
	})
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode cached catalog: %w", err)
	}
	return products, nil
}

// GetProduct returns one product, or nil when absent.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// SaveProduct upserts a product, drops the catalog cache, and records
// the action.
func (s *CatalogService) SaveProduct(ctx context.Context, p *model.Product) error {
	if err := s.productRepo.Upsert(ctx, p); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	s.audit("save_product", map[string]any{"product_id": p.ID, "name": p.Name})
	return nil
}

// DeleteProduct removes a product, drops the catalog cache, and records
// the action.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	s.audit("delete_product", map[string]any{"product_id": id})
	return nil
}

// StoreStatus returns the open/closed singleton.
func (s *CatalogService) StoreStatus(ctx context.Context) (*model.StoreStatus, error) {
	if s.statusRepo == nil {
		return &model.StoreStatus{IsOpen: false, ClosingMessage: "Store Closed"}, nil
	}
	return s.statusRepo.Get(ctx)
}

// UpdateStoreStatus upserts the singleton and records the action.
func (s *CatalogService) UpdateStoreStatus(ctx context.Context, status model.StoreStatus) error {
	if s.statusRepo == nil {
		return fmt.Errorf("store status repository unavailable")
	}
	if err := s.statusRepo.Update(ctx, status); err != nil {
		return err
	}
	s.audit("update_store_status", status)
	return nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		log.Printf("[CatalogService] Failed to invalidate catalog cache: %v", err)
	}
}

// audit appends an audit entry on a detached goroutine. Audit logging is
// fire-and-forget; failures never surface to the admin.
func (s *CatalogService) audit(action string, details any) {
	if s.auditRepo == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.auditRepo.Append(ctx, action, details); err != nil {
			log.Printf("[CatalogService] Audit append failed for %s: %v", action, err)
		}
	}()
}
