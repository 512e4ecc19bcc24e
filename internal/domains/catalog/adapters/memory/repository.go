package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.UpdatedAt = clone.CreatedAt
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) List(_ context.Context, query ports.Query) (*ports.Page, error) {
	r.mu.RLock()
	matched := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if matches(product, query) {
			clone := *product
			matched = append(matched, &clone)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return &ports.Page{
		Products: matched[start:end],
		Total:    total,
		PageNum:  query.Page,
		Pages:    pageCount(total, query.Limit),
	}, nil
}

func (r *Repository) Update(_ context.Context, id int64, patch ports.Patch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	product.UpdatedAt = time.Now()
	clone := *product
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func matches(product *domain.Product, query ports.Query) bool {
	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) {
			return false
		}
	}
	if query.Category != "" && product.Category != query.Category {
		return false
	}
	if query.MinPrice != nil && product.Price.LessThan(*query.MinPrice) {
		return false
	}
	if query.MaxPrice != nil && product.Price.GreaterThan(*query.MaxPrice) {
		return false
	}
	return true
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
