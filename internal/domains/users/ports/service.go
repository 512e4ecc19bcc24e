package ports

import (
	"context"
	"time"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
)

// Profile is the read-side projection returned for a user lookup: the
// account plus a handful of their most recent orders.
type Profile struct {
	User         *domain.User
	RecentOrders []OrderSummary
}

// OrderSummary is the minimal order view embedded in a profile.
type OrderSummary struct {
	ID        int64
	Total     string
	Status    string
	ItemCount int
	CreatedAt time.Time
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetProfile(ctx context.Context, requester domain.Identity, userID int64) (*Profile, error)
}
