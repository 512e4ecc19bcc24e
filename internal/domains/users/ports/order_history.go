package ports

import "context"

// OrderHistory is the read-only view of the orders context consumed when
// assembling a profile.
type OrderHistory interface {
	RecentOrdersByUser(ctx context.Context, userID int64, limit int) ([]OrderSummary, error)
}

// NoopOrderHistory is a safe default when profile responses should omit orders.
var NoopOrderHistory OrderHistory = noopOrderHistory{}

type noopOrderHistory struct{}

func (noopOrderHistory) RecentOrdersByUser(_ context.Context, _ int64, _ int) ([]OrderSummary, error) {
	return nil, nil
}
