package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
)

// LineItemRequest is one entry of the POST /api/orders body.
type LineItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the POST /api/orders body.
type CreateOrderRequest struct {
	Items []LineItemRequest `json:"items"`
}

// ToLineItems converts the request body into domain line items.
func ToLineItems(req CreateOrderRequest) []ordersdomain.LineItem {
	items := make([]ordersdomain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordersdomain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items
}

// Product is the catalog projection embedded in order items.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
}

// OrderItem is the transport shape of one order line.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

// Owner is the minimal user projection on read-side orders.
type Owner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is the transport shape of a full order.
type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderItem     `json:"items"`
	User      *Owner          `json:"user,omitempty"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:        order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		Items:     make([]OrderItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		mapped := OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product != nil {
			mapped.Product = &Product{
				ID:          item.Product.ID,
				Name:        item.Product.Name,
				Description: item.Product.Description,
				Price:       item.Product.Price,
				Stock:       item.Product.Stock,
				Category:    item.Product.Category,
				ImageURL:    item.Product.ImageURL,
			}
		}
		out.Items = append(out.Items, mapped)
	}
	if order.User != nil {
		out.User = &Owner{ID: order.User.ID, Name: order.User.Name, Email: order.User.Email}
	}
	return out
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
