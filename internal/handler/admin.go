package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"deposito626-api/internal/inventory"
	"deposito626-api/internal/middleware"
	"deposito626-api/internal/model"
	"deposito626-api/internal/phone"
	"deposito626-api/internal/repository"
	"deposito626-api/internal/service"
	"deposito626-api/pkg/apierror"
	"deposito626-api/pkg/response"
)

// MemberAdder registers a phone number on the allowlist. Nil when the
// members database is not configured.
type MemberAdder interface {
	Add(ctx context.Context, phoneNumber string) error
}

// AdminHandler is the back-office surface: sessions, catalog
// management, order workflow, uploads and the audit trail.
type AdminHandler struct {
	sessions *service.SessionService
	catalog  *service.CatalogService
	orders   *service.OrderService
	uploads  *service.UploadService
	audit    repository.AuditRepository
	members  MemberAdder
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	sessions *service.SessionService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	uploads *service.UploadService,
	audit repository.AuditRepository,
	members MemberAdder,
) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		catalog:  catalog,
		orders:   orders,
		uploads:  uploads,
		audit:    audit,
		members:  members,
	}
}

// LoginRequest carries the back-office login key.
type LoginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		response.Error(w, apierror.ServiceUnavailable("admin access is not configured"))
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	token, err := h.sessions.Login(r.Context(), req.Password)
	if err != nil {
		response.Error(w, apierror.Unauthorized("invalid credentials"))
		return
	}

	response.OK(w, map[string]any{
		"token":      token,
		"expires_in": int(service.SessionTTL.Seconds()),
	})
}

// Logout handles POST /api/v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if err := h.sessions.Logout(r.Context(), token); err != nil {
		log.Printf("[AdminHandler] Logout failed: %v", err)
	}
	response.NoContent(w)
}

// LogoutAll handles POST /api/v1/admin/logout-all
func (h *AdminHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.RevokeAll(r.Context()); err != nil {
		log.Printf("[AdminHandler] Revoke all sessions failed: %v", err)
		response.Error(w, apierror.InternalError("failed to revoke sessions"))
		return
	}
	response.NoContent(w)
}

// Refresh handles POST /api/v1/admin/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Token")
	if err := h.sessions.Refresh(r.Context(), token); err != nil {
		response.Error(w, apierror.Unauthorized("session expired"))
		return
	}
	response.OK(w, map[string]any{
		"expires_in": int(service.SessionTTL.Seconds()),
	})
}

// Me handles GET /api/v1/admin/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetAdminSession(r.Context())
	if session == nil {
		response.Error(w, apierror.Unauthorized("no active session"))
		return
	}
	response.OK(w, session)
}

// ProductRequest is the catalog edit form. Flavors arrive as the raw
// comma-separated text the admin typed; stock is reconciled server-side.
type ProductRequest struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	ImageURL       string         `json:"image_url"`
	StockStatus    string         `json:"stock_status"`
	Category       string         `json:"category"`
	AvailableSizes []string       `json:"available_sizes"`
	FlavorsInput   string         `json:"flavors_input"`
	FlavorStock    map[string]int `json:"flavor_stock"`
	StockQuantity  int            `json:"stock_quantity"`
}

func (h *AdminHandler) buildProduct(id int64, req ProductRequest) (*model.Product, *apierror.Error) {
	if req.Name == "" {
		return nil, apierror.ValidationError("validation failed",
			apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if req.Price < 0 {
		return nil, apierror.ValidationError("validation failed",
			apierror.FieldError{Field: "price", Message: "price cannot be negative"})
	}

	status := model.StockStatus(req.StockStatus)
	switch status {
	case model.StockInStock, model.StockLimited, model.StockOutOfStock:
	case "":
		status = model.StockInStock
	default:
		return nil, apierror.ValidationError("validation failed",
			apierror.FieldError{Field: "stock_status", Message: "unknown stock status"})
	}

	form := inventory.NewForm(model.Product{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		StockStatus:    status,
		Category:       req.Category,
		AvailableSizes: req.AvailableSizes,
	})
	form.SetFlavorsInput(req.FlavorsInput)
	for flavor, qty := range req.FlavorStock {
		form.SetFlavorStock(flavor, qty)
	}
	if form.ManualEditable() {
		form.SetManualQuantity(req.StockQuantity)
	}

	p := form.Product()
	return &p, nil
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	p, apiErr := h.buildProduct(0, req)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.catalog.SaveProduct(r.Context(), p); err != nil {
		log.Printf("[AdminHandler] Create product failed: %v", err)
		response.Error(w, apierror.InternalError("failed to save product"))
		return
	}

	response.Created(w, p)
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(w, apierror.BadRequest("invalid product id"))
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	existing, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		log.Printf("[AdminHandler] Update product lookup failed: %v", err)
		response.Error(w, apierror.InternalError("failed to load product"))
		return
	}
	if existing == nil {
		response.Error(w, apierror.NotFound("product not found"))
		return
	}

	p, apiErr := h.buildProduct(id, req)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if err := h.catalog.SaveProduct(r.Context(), p); err != nil {
		log.Printf("[AdminHandler] Update product failed: %v", err)
		response.Error(w, apierror.InternalError("failed to save product"))
		return
	}

	response.OK(w, p)
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(w, apierror.BadRequest("invalid product id"))
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		log.Printf("[AdminHandler] Delete product failed: %v", err)
		response.Error(w, apierror.InternalError("failed to delete product"))
		return
	}

	response.NoContent(w)
}

// StoreStatusRequest toggles the storefront open flag.
type StoreStatusRequest struct {
	IsOpen         bool   `json:"is_open"`
	ClosingMessage string `json:"closing_message"`
}

// UpdateStoreStatus handles PUT /api/v1/admin/store-status
func (h *AdminHandler) UpdateStoreStatus(w http.ResponseWriter, r *http.Request) {
	var req StoreStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	status := model.StoreStatus{
		IsOpen:         req.IsOpen,
		ClosingMessage: req.ClosingMessage,
	}
	if err := h.catalog.UpdateStoreStatus(r.Context(), status); err != nil {
		log.Printf("[AdminHandler] Update store status failed: %v", err)
		response.Error(w, apierror.InternalError("failed to update store status"))
		return
	}

	response.OK(w, status)
}

// ListOrders handles GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		log.Printf("[AdminHandler] List orders failed: %v", err)
		response.Error(w, apierror.InternalError("failed to list orders"))
		return
	}
	response.OK(w, orders)
}

// OrderStatusRequest moves an order through the workflow.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(w, apierror.BadRequest("invalid order id"))
		return
	}

	var req OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if err := h.orders.UpdateStatus(r.Context(), id, model.OrderStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			response.Error(w, apierror.BadRequest(err.Error()))
		case errors.Is(err, repository.ErrOrderNotFound):
			response.Error(w, apierror.NotFound("order not found"))
		default:
			log.Printf("[AdminHandler] Update order status failed: %v", err)
			response.Error(w, apierror.InternalError("failed to update order"))
		}
		return
	}

	response.OK(w, map[string]string{"status": req.Status})
}

// OrderStats handles GET /api/v1/admin/orders/stats
func (h *AdminHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		log.Printf("[AdminHandler] Order stats failed: %v", err)
		response.Error(w, apierror.InternalError("failed to compute stats"))
		return
	}
	response.OK(w, stats)
}

// ListAudit handles GET /api/v1/admin/audit
func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}

	entries, total, err := h.audit.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("[AdminHandler] List audit failed: %v", err)
		response.Error(w, apierror.InternalError("failed to list audit entries"))
		return
	}

	response.JSONWithMeta(w, http.StatusOK, entries, page, limit, total)
}

// maxUploadSize bounds product image uploads to 10 MB.
const maxUploadSize = 10 << 20

// UploadImage handles POST /api/v1/admin/uploads
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, apierror.BadRequest("invalid or oversized upload"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, apierror.BadRequest("missing image file"))
		return
	}
	defer file.Close()

	url, err := h.uploads.SaveImage(header.Filename, file)
	if err != nil {
		log.Printf("[AdminHandler] Upload failed: %v", err)
		response.Error(w, apierror.BadRequest("unable to save image"))
		return
	}

	response.Created(w, map[string]string{"url": url})
}

// MemberRequest adds a phone number to the allowlist.
type MemberRequest struct {
	Phone string `json:"phone"`
}

// AddMember handles POST /api/v1/admin/members
func (h *AdminHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	if h.members == nil {
		response.Error(w, apierror.ServiceUnavailable("members database is not configured"))
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	normalized := phone.Normalize(req.Phone)
	if len(normalized) < phone.MinDigits {
		response.Error(w, apierror.BadRequest("please enter a valid 10-digit phone number"))
		return
	}

	if err := h.members.Add(r.Context(), normalized); err != nil {
		log.Printf("[AdminHandler] Add member failed: %v", err)
		response.Error(w, apierror.InternalError("failed to add member"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Append(r.Context(), "member_added", map[string]string{"phone": normalized}); err != nil {
			log.Printf("[AdminHandler] Audit append failed: %v", err)
		}
	}

	response.Created(w, map[string]string{"phone": normalized})
}
