package handler

import (
	"encoding/json"
	"net/http"

	"deposito626-api/internal/cart"
	"deposito626-api/internal/model"
	"deposito626-api/pkg/apierror"
	"deposito626-api/pkg/response"
)

// CartHandler exposes the cart store over HTTP. The access gate is
// enforced here: adding to the cart is refused until the session is
// unlocked, and the refusal opens the gate modal.
type CartHandler struct {
	store *cart.Store
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{store: store}
}

// cartView is the cart plus its derived totals.
type cartView struct {
	Items     []model.CartLine  `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	ItemCount int               `json:"item_count"`
	User      model.UserSession `json:"user"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Items:     h.store.Items(),
		Subtotal:  h.store.Subtotal(),
		ItemCount: h.store.ItemCount(),
		User:      h.store.User(),
	}
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.view())
}

// AddItemRequest is the body for adding a line to the cart.
type AddItemRequest struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Size      string  `json:"size"`
	Flavor    string  `json:"flavor"`
	Quantity  int     `json:"quantity"`
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if !h.store.User().IsAccessUnlocked {
		h.store.OpenAccessModal()
		response.Error(w, apierror.Forbidden("unlock access before ordering"))
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Quantity < 1 {
		req.Quantity = 1
	}

	h.store.AddItem(model.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		Size:      req.Size,
		Flavor:    req.Flavor,
	}, req.Quantity)

	response.OK(w, h.view())
}

// UpdateItemRequest identifies a line and sets its quantity.
type UpdateItemRequest struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Flavor    string `json:"flavor"`
	Quantity  int    `json:"quantity"`
}

// UpdateItem handles PATCH /api/v1/cart/items
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	h.store.UpdateQuantity(model.LineIdentity{
		ProductID: req.ProductID,
		Size:      req.Size,
		Flavor:    req.Flavor,
	}, req.Quantity)

	response.OK(w, h.view())
}

// RemoveItem handles DELETE /api/v1/cart/items
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	h.store.RemoveItem(model.LineIdentity{
		ProductID: req.ProductID,
		Size:      req.Size,
		Flavor:    req.Flavor,
	})

	response.OK(w, h.view())
}

// OpenRequest toggles the cart overlay.
type OpenRequest struct {
	Open bool `json:"open"`
}

// SetOpen handles POST /api/v1/cart/open
func (h *CartHandler) SetOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	h.store.SetCartOpen(req.Open)
	response.OK(w, h.view())
}
