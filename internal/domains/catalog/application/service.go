package application

import (
	"context"
	"errors"

	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListProducts applies pagination defaults and delegates to the repository.
func (s *Service) ListProducts(ctx context.Context, query ports.Query) (*ports.Page, error) {
	query = normalizeQuery(query)
	return s.repo.List(ctx, query)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct applies a partial update; unset patch fields keep their
// stored values.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch ports.Patch) (*domain.Product, error) {
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, mapError(domain.ErrNegativePrice)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalizeQuery(query ports.Query) ports.Query {
	if query.Page < 1 {
		query.Page = defaultPage
	}
	if query.Limit < 1 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}
	return query
}

var _ ports.Service = (*Service)(nil)
