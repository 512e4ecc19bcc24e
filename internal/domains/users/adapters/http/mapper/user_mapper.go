package mapper

import (
	"time"

	usersdomain "github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

// User is the transport-layer shape for account payloads. The password hash
// never leaves the service.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderSummary mirrors the recent-order projection embedded in a profile.
type OrderSummary struct {
	ID        int64     `json:"id"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the GET /api/users/:id response body.
type Profile struct {
	User
	Orders []OrderSummary `json:"orders"`
}

// FromDomainUser converts a domain user to the transport representation.
func FromDomainUser(user *usersdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// FromProfile converts a profile projection to the transport representation.
func FromProfile(profile *usersports.Profile) Profile {
	if profile == nil {
		return Profile{}
	}
	out := Profile{User: FromDomainUser(profile.User), Orders: []OrderSummary{}}
	for _, order := range profile.RecentOrders {
		out.Orders = append(out.Orders, OrderSummary{
			ID:        order.ID,
			Total:     order.Total,
			Status:    order.Status,
			ItemCount: order.ItemCount,
			CreatedAt: order.CreatedAt,
		})
	}
	return out
}
