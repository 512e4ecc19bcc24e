package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Sam99132/full-stack-backend/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
)

func seedProduct(t *testing.T, products *catalogmemory.Repository, stock int) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct("Widget", "", decimal.RequireFromString("100.00"), stock, "Electronics", "")
	require.NoError(t, err)
	created, err := products.Create(context.Background(), product)
	require.NoError(t, err)
	return created
}

func TestPlaceOrder_ConcurrentPlacementsConserveStock(t *testing.T) {
	products := catalogmemory.NewRepository()
	repo := NewRepository(products, nil)
	widget := seedProduct(t, products, 10)

	const attempts = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	placed := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := repo.PlaceOrder(context.Background(), userID, []domain.LineItem{
				{ProductID: widget.ID, Quantity: 1},
			})
			if err != nil {
				var shortStock *domain.InsufficientStockError
				require.ErrorAs(t, err, &shortStock)
				return
			}
			mu.Lock()
			placed++
			mu.Unlock()
		}(int64(i + 1))
	}
	wg.Wait()

	require.Equal(t, 10, placed, "exactly the available stock should be sold")
	remaining, err := products.GetByID(context.Background(), widget.ID)
	require.NoError(t, err)
	require.Equal(t, 0, remaining.Stock)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 10)
}

func TestPlaceOrder_NeverOversellsMixedQuantities(t *testing.T) {
	products := catalogmemory.NewRepository()
	repo := NewRepository(products, nil)
	widget := seedProduct(t, products, 7)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(qty int) {
			defer wg.Done()
			_, _ = repo.PlaceOrder(context.Background(), 1, []domain.LineItem{
				{ProductID: widget.ID, Quantity: qty},
			})
		}(i%3 + 1)
	}
	wg.Wait()

	remaining, err := products.GetByID(context.Background(), widget.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, remaining.Stock, 0, "stock must never go negative")

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	sold := 0
	for _, order := range all {
		for _, item := range order.Items {
			sold += item.Quantity
		}
	}
	require.Equal(t, 7-remaining.Stock, sold, "sold quantity must equal stock drawn down")
}

func TestListRecentByUser_Limits(t *testing.T) {
	products := catalogmemory.NewRepository()
	repo := NewRepository(products, nil)
	widget := seedProduct(t, products, 100)

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		_, err := repo.PlaceOrder(ctx, 1, []domain.LineItem{{ProductID: widget.ID, Quantity: 1}})
		require.NoError(t, err)
	}

	recent, err := repo.ListRecentByUser(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		require.Greater(t, recent[i-1].ID, recent[i].ID, "newest first")
	}
}
