package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name;index"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock       int             `gorm:"column:stock"`
	Category    string          `gorm:"column:category;type:varchar(64);index"`
	ImageURL    string          `gorm:"column:image_url"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Create inserts a product.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns a filtered, paginated slice of the catalog, newest first.
func (r *Repository) List(ctx context.Context, query ports.Query) (*ports.Page, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Model(&productRecord{})
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if query.Category != "" {
		tx = tx.Where("category = ?", query.Category)
	}
	if query.MinPrice != nil {
		tx = tx.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		tx = tx.Where("price <= ?", *query.MaxPrice)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (query.Page - 1) * query.Limit
	var records []productRecord
	if err := tx.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&records).Error; err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return &ports.Page{
		Products: products,
		Total:    total,
		PageNum:  query.Page,
		Pages:    pageCount(total, query.Limit),
	}, nil
}

// Update applies a partial update and returns the stored row.
func (r *Repository) Update(ctx context.Context, id int64, patch ports.Patch) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ports.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
