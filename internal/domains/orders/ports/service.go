package ports

import (
	"context"
	"errors"

	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
)

var ErrForbidden = errors.New("order access denied")

// Requester identifies the caller for visibility filtering. ReadAll is
// derived from the role predicate at the boundary, so services never inspect
// roles directly.
type Requester struct {
	UserID  int64
	ReadAll bool
}

// Owns reports whether the requester may see the given order.
func (r Requester) Owns(order *domain.Order) bool {
	if order == nil {
		return false
	}
	return r.ReadAll || order.UserID == r.UserID
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, userID int64, items []domain.LineItem) (*domain.Order, error)
	ListOrders(ctx context.Context, requester Requester) ([]*domain.Order, error)
	GetOrder(ctx context.Context, requester Requester, orderID int64) (*domain.Order, error)
}
