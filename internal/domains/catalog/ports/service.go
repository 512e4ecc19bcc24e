package ports

import (
	"context"

	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, query Query) (*Page, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch Patch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
