package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cataloghttpmapper "github.com/Sam99132/full-stack-backend/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/Sam99132/full-stack-backend/internal/domains/catalog/application"
	catalogdomain "github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	catalogports "github.com/Sam99132/full-stack-backend/internal/domains/catalog/ports"
)

// ProductAPI wires HTTP transport with the catalog bounded context.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

type productPayload struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl"`
}

// Get /api/products
// Browse the catalog with search, filters, and pagination
func (api *ProductAPI) ListProducts(c *gin.Context) {
	query := catalogports.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, errors.New("minPrice must be a number"))
			return
		}
		query.MinPrice = &price
	}
	if raw := c.Query("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, errors.New("maxPrice must be a number"))
			return
		}
		query.MaxPrice = &price
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	page, err := api.service.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromPage(page))
}

// Get /api/products/:id
// Fetch one product
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Post /api/products
// Add a product to the catalog (admin)
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Name == nil || payload.Price == nil {
		respondError(c, http.StatusBadRequest, errors.New("name and price are required"))
		return
	}
	product, err := catalogdomain.NewProduct(
		*payload.Name,
		stringOrEmpty(payload.Description),
		*payload.Price,
		intOrZero(payload.Stock),
		stringOrEmpty(payload.Category),
		stringOrEmpty(payload.ImageURL),
	)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(created))
}

// Put /api/products/:id
// Partially update a product (admin); omitted fields keep their values
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	patch := catalogports.Patch{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(updated))
}

// Delete /api/products/:id
// Remove a product from the catalog (admin)
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, errors.New(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
