package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Sam99132/full-stack-backend/internal/shared/errors"
)

// respondError maps a status code onto an RFC 7807 response.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		apierrors.RespondError(c, err)
		return
	}
	apierrors.Respond(c, problem)
}
