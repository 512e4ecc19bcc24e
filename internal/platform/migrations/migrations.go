package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for all bounded contexts in one place instead of
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(32)"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Product schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	UserID    int64           `gorm:"column:user_id;index"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(14,2)"`
	Status    string          `gorm:"column:status;type:varchar(32)"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema mirrors the orders Postgres adapter. Price is the
// snapshot captured at order time.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id"`
	Quantity  int             `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }
