package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usershttpmapper "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/http/mapper"
	usersapp "github.com/Sam99132/full-stack-backend/internal/domains/users/application"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

// AuthAPI wires HTTP transport with registration and login use cases.
type AuthAPI struct {
	service usersports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service usersports.Service) AuthAPI {
	return AuthAPI{service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Post /api/auth/register
// Create a customer account
func (api *AuthAPI) Register(c *gin.Context) {
	var payload registerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usershttpmapper.FromDomainUser(user))
}

// Post /api/auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  usershttpmapper.FromDomainUser(user),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usersapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, usersapp.ErrAuthentication), errors.Is(err, usersports.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, usersports.ErrEmailTaken):
		respondError(c, http.StatusConflict, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
