package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usershttpmapper "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

// UserAPI wires HTTP transport with the users bounded context.
type UserAPI struct {
	service usersports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

// Get /api/users/:id
// Fetch a user profile with their recent orders
func (api *UserAPI) GetUser(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	profile, err := api.service.GetProfile(c.Request.Context(), identity, id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, usershttpmapper.FromProfile(profile))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usersports.ErrForbidden):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, usersports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
