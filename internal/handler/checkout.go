package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"deposito626-api/internal/checkout"
	"deposito626-api/pkg/apierror"
	"deposito626-api/pkg/response"
)

// CheckoutHandler exposes the checkout flow over HTTP.
type CheckoutHandler struct {
	flow *checkout.Flow
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(flow *checkout.Flow) *CheckoutHandler {
	return &CheckoutHandler{flow: flow}
}

// CheckoutRequest carries the contact details for an order.
type CheckoutRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	conf, err := h.flow.Checkout(req.Phone, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrInvalidPhone),
			errors.Is(err, checkout.ErrInvalidAddress):
			response.Error(w, apierror.BadRequest(err.Error()))
		default:
			response.Error(w, apierror.InternalError("checkout failed"))
		}
		return
	}

	response.OK(w, conf)
}

// Send handles POST /api/v1/checkout/send
func (h *CheckoutHandler) Send(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.Send(); err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotConfirming):
			response.Error(w, apierror.BadRequest(err.Error()))
		case errors.Is(err, checkout.ErrCountdownActive):
			response.Error(w, apierror.TooEarly(err.Error()))
		default:
			response.Error(w, apierror.InternalError("unable to send order"))
		}
		return
	}

	response.OK(w, map[string]string{"status": "sent"})
}

// Copy handles POST /api/v1/checkout/copy
func (h *CheckoutHandler) Copy(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.CopyAgain(); err != nil {
		if errors.Is(err, checkout.ErrNotConfirming) {
			response.Error(w, apierror.BadRequest(err.Error()))
			return
		}
		response.Error(w, apierror.InternalError("unable to copy order message"))
		return
	}

	response.OK(w, map[string]string{"status": "copied"})
}

// Abandon handles POST /api/v1/checkout/abandon
func (h *CheckoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.flow.Abandon()
	response.OK(w, map[string]string{"status": "abandoned"})
}

// State handles GET /api/v1/checkout
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	remaining := h.flow.CountdownRemaining()
	response.OK(w, map[string]any{
		"step":              h.flow.Step(),
		"countdown_seconds": int(remaining.Round(time.Second) / time.Second),
	})
}
