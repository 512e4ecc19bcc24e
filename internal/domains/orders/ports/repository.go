package ports

import (
	"context"
	"errors"

	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrStoreFailure wraps underlying storage errors surfaced to callers as
	// an opaque failure.
	ErrStoreFailure = errors.New("order store failure")
)

// Repository persists orders. PlaceOrder is the only entry point that
// creates one: it must re-validate inventory, insert the order with its
// items, and decrement product stock as a single atomic unit, leaving state
// untouched on any failure.
type Repository interface {
	PlaceOrder(ctx context.Context, userID int64, items []domain.LineItem) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]*domain.Order, error)
}
