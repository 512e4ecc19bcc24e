package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	catalogports "github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. A single mutex
// serializes placements, giving the same all-or-nothing stock semantics the
// postgres adapter gets from its transaction.
type Repository struct {
	mu        sync.RWMutex
	orders    map[int64]*domain.Order
	products  catalogports.Repository
	users     usersports.Repository
	nextOrder int64
	nextItem  int64
}

// NewRepository wires the adapter against catalog and user repositories. The
// users repository may be nil; owner projections are then omitted.
func NewRepository(products catalogports.Repository, users usersports.Repository) *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, products: products, users: users}
}

func (r *Repository) PlaceOrder(ctx context.Context, userID int64, items []domain.LineItem) (*domain.Order, error) {
	if r.products == nil {
		return nil, errors.New("memory order repository not configured")
	}
	if err := domain.ValidateLines(items); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	checked, err := domain.CheckInventory(items, func(productID int64) (*domain.ProductInfo, error) {
		product, err := r.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				return nil, &domain.ProductNotFoundError{ProductID: productID}
			}
			return nil, err
		}
		return &domain.ProductInfo{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Stock:       product.Stock,
			Category:    product.Category,
			ImageURL:    product.ImageURL,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// Per-line checks pass individually; re-verify combined quantities per
	// product so no decrement can drive stock negative.
	combined := map[int64]int{}
	for _, item := range items {
		combined[item.ProductID] += item.Quantity
	}
	for productID, quantity := range combined {
		product, err := r.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.HasStock(quantity) {
			return nil, &domain.InsufficientStockError{
				ProductID: productID,
				Available: product.Stock,
				Requested: quantity,
			}
		}
	}

	order, err := domain.NewOrder(userID, checked)
	if err != nil {
		return nil, err
	}

	for productID, quantity := range combined {
		product, err := r.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		remaining := product.Stock - quantity
		if _, err := r.products.Update(ctx, productID, catalogports.Patch{Stock: &remaining}); err != nil {
			return nil, err
		}
	}

	r.nextOrder++
	order.ID = r.nextOrder
	order.CreatedAt = time.Now()
	for i := range order.Items {
		r.nextItem++
		order.Items[i].ID = r.nextItem
		order.Items[i].OrderID = order.ID
	}
	order.User = r.ownerProjection(ctx, userID)

	clone := cloneOrder(order)
	r.orders[order.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, cloneOrder(order))
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *Repository) ListAll(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *Repository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]*domain.Order, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *Repository) ownerProjection(ctx context.Context, userID int64) *domain.UserInfo {
	if r.users == nil {
		return nil
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil
	}
	return &domain.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}
}

func sortNewestFirst(list []*domain.Order) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	if order.User != nil {
		user := *order.User
		clone.User = &user
	}
	return &clone
}
