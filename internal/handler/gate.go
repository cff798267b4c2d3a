package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"deposito626-api/internal/cart"
	"deposito626-api/internal/gate"
	"deposito626-api/pkg/apierror"
	"deposito626-api/pkg/response"
)

// GateHandler exposes the access gate over HTTP.
type GateHandler struct {
	gate  *gate.Gate
	store *cart.Store
}

// NewGateHandler creates a new gate handler.
func NewGateHandler(g *gate.Gate, store *cart.Store) *GateHandler {
	return &GateHandler{gate: g, store: store}
}

type gateStateResponse struct {
	State        gate.State `json:"state"`
	ModalVisible bool       `json:"modal_visible"`
}

func (h *GateHandler) state() gateStateResponse {
	return gateStateResponse{
		State:        h.gate.CurrentState(),
		ModalVisible: h.gate.ModalVisible(),
	}
}

// State handles GET /api/v1/access
func (h *GateHandler) State(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.state())
}

// UnlockRequest carries the phone number presented at the gate.
type UnlockRequest struct {
	Phone string `json:"phone"`
}

// Unlock handles POST /api/v1/access/unlock
func (h *GateHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	normalized, err := h.gate.AttemptUnlock(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrInvalidPhone):
			response.Error(w, apierror.BadRequest(err.Error()))
		case errors.Is(err, gate.ErrNotAllowed):
			response.Error(w, apierror.Forbidden(err.Error()))
		default:
			log.Printf("[GateHandler] unlock lookup failed: %v", err)
			response.Error(w, apierror.ServiceUnavailable("unable to verify access right now"))
		}
		return
	}

	response.OK(w, map[string]any{
		"state": gate.Unlocked,
		"phone": normalized,
	})
}

// OpenModal handles POST /api/v1/access/modal/open
func (h *GateHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	h.store.OpenAccessModal()
	response.OK(w, h.state())
}

// CloseModal handles POST /api/v1/access/modal/close
func (h *GateHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.store.CloseAccessModal()
	response.OK(w, h.state())
}
