package postgres

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. PlaceOrder runs the
// whole effect group (inventory re-check, order insert, item inserts, stock
// decrements) inside one transaction with row-level product locks.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	UserID    int64           `gorm:"column:user_id;index"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(14,2)"`
	Status    string          `gorm:"column:status;type:varchar(32)"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id"`
	Quantity  int             `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// productRow is the slice of the products table this adapter locks and
// decrements; the catalog adapter owns the full schema.
type productRow struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price"`
	Stock       int             `gorm:"column:stock"`
	Category    string          `gorm:"column:category"`
	ImageURL    string          `gorm:"column:image_url"`
}

func (productRow) TableName() string { return "products" }

// userRow is the minimal owner projection read for order detail responses.
type userRow struct {
	ID    int64  `gorm:"primaryKey;column:id"`
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email"`
}

func (userRow) TableName() string { return "users" }

// PlaceOrder atomically creates the order, its items, and decrements product
// stock. Product rows are locked in id order before validation so two
// concurrent orders racing on the same product serialize; the decrement is
// additionally conditional on remaining stock, so the transaction aborts
// rather than ever committing a negative count.
func (r *Repository) PlaceOrder(ctx context.Context, userID int64, items []domain.LineItem) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := domain.ValidateLines(items); err != nil {
		return nil, err
	}

	var orderID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockProducts(tx, items)
		if err != nil {
			return err
		}

		checked, err := domain.CheckInventory(items, func(productID int64) (*domain.ProductInfo, error) {
			info, ok := locked[productID]
			if !ok {
				return nil, &domain.ProductNotFoundError{ProductID: productID}
			}
			return info, nil
		})
		if err != nil {
			return err
		}

		order, err := domain.NewOrder(userID, checked)
		if err != nil {
			return err
		}

		record := orderRecord{
			UserID: order.UserID,
			Total:  order.Total,
			Status: string(order.Status),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		itemRecords := make([]orderItemRecord, 0, len(checked))
		for _, item := range checked {
			itemRecords = append(itemRecords, orderItemRecord{
				OrderID:   record.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		if err := tx.Create(&itemRecords).Error; err != nil {
			return err
		}

		for _, item := range items {
			if err := decrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		orderID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// lockProducts acquires FOR UPDATE locks on every referenced product row in
// ascending id order and returns their current state.
func lockProducts(tx *gorm.DB, items []domain.LineItem) (map[int64]*domain.ProductInfo, error) {
	ids := make([]int64, 0, len(items))
	seen := map[int64]bool{}
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked := make(map[int64]*domain.ProductInfo, len(ids))
	for _, id := range ids {
		var row productRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &domain.ProductNotFoundError{ProductID: id}
			}
			return nil, err
		}
		locked[id] = row.toInfo()
	}
	return locked, nil
}

// decrementStock applies a conditional decrement; zero rows affected means
// the remaining stock no longer covers the quantity and the transaction must
// abort.
func decrementStock(tx *gorm.DB, productID int64, quantity int) error {
	result := tx.Model(&productRow{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var row productRow
		available := 0
		if err := tx.First(&row, "id = ?", productID).Error; err == nil {
			available = row.Stock
		}
		return &domain.InsufficientStockError{
			ProductID: productID,
			Available: available,
			Requested: quantity,
		}
	}
	return nil
}

// GetByID fetches an order with items, product detail, and owner projection.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	orders, err := r.hydrate(ctx, []orderRecord{record})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// ListByUser returns the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

// ListAll returns every order in the system, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

// ListRecentByUser returns the user's most recent orders, capped at limit.
func (r *Repository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

// hydrate attaches items, product detail, and owner projections to order
// records with batched lookups.
func (r *Repository) hydrate(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	if len(records) == 0 {
		return []*domain.Order{}, nil
	}

	orderIDs := make([]int64, 0, len(records))
	userIDs := make([]int64, 0, len(records))
	for _, record := range records {
		orderIDs = append(orderIDs, record.ID)
		userIDs = append(userIDs, record.UserID)
	}

	var itemRecords []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&itemRecords).Error; err != nil {
		return nil, err
	}

	productIDs := make([]int64, 0, len(itemRecords))
	for _, item := range itemRecords {
		productIDs = append(productIDs, item.ProductID)
	}
	products := map[int64]*domain.ProductInfo{}
	if len(productIDs) > 0 {
		var productRows []productRow
		if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&productRows).Error; err != nil {
			return nil, err
		}
		for i := range productRows {
			products[productRows[i].ID] = productRows[i].toInfo()
		}
	}

	users := map[int64]*domain.UserInfo{}
	var userRows []userRow
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&userRows).Error; err != nil {
		return nil, err
	}
	for _, row := range userRows {
		users[row.ID] = &domain.UserInfo{ID: row.ID, Name: row.Name, Email: row.Email}
	}

	itemsByOrder := map[int64][]domain.OrderItem{}
	for _, item := range itemRecords {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Product:   products[item.ProductID],
		})
	}

	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, &domain.Order{
			ID:        record.ID,
			UserID:    record.UserID,
			Total:     record.Total,
			Status:    domain.Status(record.Status),
			CreatedAt: record.CreatedAt,
			Items:     itemsByOrder[record.ID],
			User:      users[record.UserID],
		})
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (p productRow) toInfo() *domain.ProductInfo {
	return &domain.ProductInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}
