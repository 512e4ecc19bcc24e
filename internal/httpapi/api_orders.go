package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/Sam99132/full-stack-backend/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
	ordersports "github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
	usersdomain "github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	apierrors "github.com/Sam99132/full-stack-backend/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the orders bounded context.
type OrderAPI struct {
	service ordersports.Service
	logger  *slog.Logger
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, logger *slog.Logger) OrderAPI {
	return OrderAPI{service: service, logger: logger}
}

// Post /api/orders
// Place an order; stock is reserved atomically
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var payload ordershttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.PlaceOrder(c.Request.Context(), identity.UserID, ordershttpmapper.ToLineItems(payload))
	if err != nil {
		api.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomainOrder(order))
}

// Get /api/orders
// List orders visible to the caller, newest first
func (api *OrderAPI) ListOrders(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), requesterFrom(identity))
	if err != nil {
		api.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/:id
// Fetch one order with full detail
func (api *OrderAPI) GetOrder(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), requesterFrom(identity), id)
	if err != nil {
		api.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainOrder(order))
}

// requesterFrom folds the role predicate into the visibility flag so the
// orders context never inspects roles.
func requesterFrom(identity usersdomain.Identity) ordersports.Requester {
	return ordersports.Requester{
		UserID:  identity.UserID,
		ReadAll: identity.Role.CanReadAllOrders(),
	}
}

// respondOrderError translates order failures into problem responses. Store
// failures are logged in full and returned opaque.
func (api *OrderAPI) respondOrderError(c *gin.Context, err error) {
	var notFound *ordersdomain.ProductNotFoundError
	var shortStock *ordersdomain.InsufficientStockError
	switch {
	case errors.As(err, &notFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("product", notFound.ProductID))
	case errors.As(err, &shortStock):
		apierrors.Respond(c, apierrors.NewInsufficientStockProblem(shortStock.ProductID, shortStock.Available, shortStock.Requested))
	case errors.Is(err, ordersdomain.ErrEmptyOrder),
		errors.Is(err, ordersdomain.ErrInvalidQuantity),
		errors.Is(err, ordersdomain.ErrInvalidProductRef):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, ordersports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersports.ErrForbidden):
		respondError(c, http.StatusForbidden, err)
	default:
		if api.logger != nil {
			api.logger.Error("order store failure",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()))
		}
		apierrors.Respond(c, apierrors.ErrInternal)
	}
}
