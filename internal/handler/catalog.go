package handler

import (
	"net/http"
	"strconv"

	"deposito626-api/internal/service"
	"deposito626-api/pkg/apierror"
	"deposito626-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the public storefront catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load catalog"))
		return
	}
	response.OK(w, products)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid product id"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load product"))
		return
	}
	if product == nil {
		response.Error(w, apierror.NotFound("product not found"))
		return
	}
	response.OK(w, product)
}

// StoreStatus handles GET /api/v1/store-status
func (h *CatalogHandler) StoreStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.catalog.StoreStatus(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load store status"))
		return
	}
	response.OK(w, status)
}
