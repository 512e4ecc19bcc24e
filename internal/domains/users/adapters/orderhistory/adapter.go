package orderhistory

import (
	"context"

	ordersports "github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

var _ usersports.OrderHistory = (*Adapter)(nil)

// Adapter exposes the orders repository as the read-only history view the
// users context embeds in profiles.
type Adapter struct {
	orders ordersports.Repository
}

func New(orders ordersports.Repository) *Adapter {
	return &Adapter{orders: orders}
}

func (a *Adapter) RecentOrdersByUser(ctx context.Context, userID int64, limit int) ([]usersports.OrderSummary, error) {
	orders, err := a.orders.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]usersports.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, usersports.OrderSummary{
			ID:        order.ID,
			Total:     order.Total.String(),
			Status:    string(order.Status),
			ItemCount: len(order.Items),
			CreatedAt: order.CreatedAt,
		})
	}
	return summaries, nil
}
