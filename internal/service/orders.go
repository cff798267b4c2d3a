package service

import (
	"context"
	"errors"
	"log"
	"time"

	"deposito626-api/internal/model"
	"deposito626-api/internal/repository"
)

// ErrInvalidOrderStatus is returned for statuses outside the workflow.
var ErrInvalidOrderStatus = errors.New("invalid order status")

// OrderService handles the admin's order workflow: list incoming orders,
// move them through statuses, and read dashboard statistics.
type OrderService struct {
	orderRepo repository.OrderRepository
	auditRepo repository.AuditRepository
}

// NewOrderService creates an order service. Returns nil if orderRepo is
// nil (required dependency).
func NewOrderService(orderRepo repository.OrderRepository, auditRepo repository.AuditRepository) *OrderService {
	if orderRepo == nil {
		return nil
	}
	return &OrderService{orderRepo: orderRepo, auditRepo: auditRepo}
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateStatus moves an order to the given status and records the
// action.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	switch status {
	case model.OrderPending, model.OrderCompleted, model.OrderCancelled:
	default:
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit("update_order_status", map[string]any{"order_id": id, "status": status})
	return nil
}

// Stats returns the dashboard aggregates.
func (s *OrderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	return s.orderRepo.GetStats(ctx)
}

func (s *OrderService) audit(action string, details any) {
	if s.auditRepo == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.auditRepo.Append(ctx, action, details); err != nil {
			log.Printf("[OrderService] Audit append failed for %s: %v", action, err)
		}
	}()
}
