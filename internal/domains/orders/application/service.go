package application

import (
	"context"

	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
)

// Service orchestrates order use cases. All stock reservation happens inside
// the repository's transactional PlaceOrder; this layer only validates input
// shape and applies visibility rules.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// PlaceOrder creates a pending order for the user, decrementing product
// stock atomically. The returned order carries its items with snapshot
// prices and product details.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, items []domain.LineItem) (*domain.Order, error) {
	if err := domain.ValidateLines(items); err != nil {
		return nil, err
	}
	order, err := s.repo.PlaceOrder(ctx, userID, items)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns the requester's orders, or every order when the
// requester can read all, newest first.
func (s *Service) ListOrders(ctx context.Context, requester ports.Requester) ([]*domain.Order, error) {
	if requester.ReadAll {
		orders, err := s.repo.ListAll(ctx)
		return orders, mapError(err)
	}
	orders, err := s.repo.ListByUser(ctx, requester.UserID)
	return orders, mapError(err)
}

// GetOrder returns one order with full detail, enforcing ownership.
func (s *Service) GetOrder(ctx context.Context, requester ports.Requester, orderID int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if !requester.Owns(order) {
		return nil, ports.ErrForbidden
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
