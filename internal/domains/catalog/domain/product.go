package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// Product is the catalog aggregate. Stock is the only field mutated outside
// catalog management: order placement decrements it.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and constructs a catalog entry.
func NewProduct(name, description string, price decimal.Decimal, stock int, category, imageURL string) (*Product, error) {
	product := &Product{
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    strings.TrimSpace(category),
		ImageURL:    strings.TrimSpace(imageURL),
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// HasStock reports whether the requested quantity can be served.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}
