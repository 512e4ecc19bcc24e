package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	catalogports "github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
)

// Product is the transport-layer shape for catalog payloads.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Pagination is the listing envelope alongside the product slice.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// ProductPage is the GET /api/products response body.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromPage converts a repository page to the transport envelope.
func FromPage(page *catalogports.Page) ProductPage {
	if page == nil {
		return ProductPage{Products: []Product{}}
	}
	out := ProductPage{
		Products: make([]Product, 0, len(page.Products)),
		Pagination: Pagination{
			Total: page.Total,
			Page:  page.PageNum,
			Pages: page.Pages,
		},
	}
	for _, product := range page.Products {
		out.Products = append(out.Products, FromDomainProduct(product))
	}
	return out
}
