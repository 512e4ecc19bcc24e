package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Query narrows and pages a catalog listing.
type Query struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	Limit    int
}

// Page is a listing slice plus its pagination envelope.
type Page struct {
	Products []*domain.Product
	Total    int64
	PageNum  int
	Pages    int
}

// Patch carries optional field updates; nil pointers leave the stored value
// unchanged.
type Patch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
	ImageURL    *string
}

type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, query Query) (*Page, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
