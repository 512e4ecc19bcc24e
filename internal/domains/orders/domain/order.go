package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. Placement only ever writes
// StatusPending; later transitions belong to fulfillment.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least one")
	ErrInvalidProductRef = errors.New("product id must be greater than zero")
)

// ProductNotFoundError reports a line item referencing a missing product.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError reports a line item exceeding available stock.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available, %d requested", e.ProductID, e.Available, e.Requested)
}

// LineItem is a requested {productId, quantity} pair submitted when placing
// an order.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Validate enforces per-line invariants.
func (l LineItem) Validate() error {
	if l.ProductID <= 0 {
		return ErrInvalidProductRef
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// ProductInfo is the catalog state an order item references. Price and Stock
// are the values observed at validation time.
type ProductInfo struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
}

// UserInfo is the minimal owner projection attached to read-side orders.
type UserInfo struct {
	ID    int64
	Name  string
	Email string
}

// OrderItem is one order line. Price is a snapshot of the product's price at
// order time and is immutable after creation.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	Product   *ProductInfo
}

// Subtotal is price times quantity for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the purchase aggregate. Total is fixed at creation time and equals
// the sum of item subtotals.
type Order struct {
	ID        int64
	UserID    int64
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
	Items     []OrderItem
	User      *UserInfo
}

// ValidateLines rejects empty or malformed line-item lists before any store
// access.
func ValidateLines(items []LineItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CheckInventory runs the read-and-validate pass: each line's product is
// fetched through lookup, existence and stock sufficiency are verified, and
// the current price is snapshotted onto the resulting order items. The pass
// has no side effects; reservation happens only inside the transactional
// writer, which must call this under the same transaction scope.
func CheckInventory(items []LineItem, lookup func(productID int64) (*ProductInfo, error)) ([]OrderItem, error) {
	if err := ValidateLines(items); err != nil {
		return nil, err
	}
	checked := make([]OrderItem, 0, len(items))
	for _, item := range items {
		product, err := lookup(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID: item.ProductID,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}
		checked = append(checked, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Product:   product,
		})
	}
	return checked, nil
}

// ComputeTotal derives the order total from validated items using exact
// decimal arithmetic.
func ComputeTotal(items []OrderItem) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, ErrEmptyOrder
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total, nil
}

// NewOrder assembles a pending order from validated items.
func NewOrder(userID int64, items []OrderItem) (*Order, error) {
	total, err := ComputeTotal(items)
	if err != nil {
		return nil, err
	}
	return &Order{
		UserID: userID,
		Total:  total,
		Status: StatusPending,
		Items:  items,
	}, nil
}
