package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	usersdomain "github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
	apierrors "github.com/Sam99132/full-stack-backend/internal/shared/errors"
)

const (
	identityKey     = "httpapi.identity"
	requestIDHeader = "X-Request-Id"
)

// RequestID tags every request with an id, honoring one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(requestIDHeader, id)
		c.Next()
	}
}

// RequireAuth verifies the bearer token and stores the caller identity on
// the context. Requests without a valid token are rejected with 401.
func RequireAuth(verifier usersports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		identity, err := verifier.Verify(raw)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin rejects callers whose role lacks administrative access. Must
// run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok || !identity.Role.IsAdmin() {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (usersdomain.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return usersdomain.Identity{}, false
	}
	identity, ok := value.(usersdomain.Identity)
	return identity, ok
}

// mustIdentity fetches the identity set by RequireAuth, responding 401 when
// the middleware was skipped.
func mustIdentity(c *gin.Context) (usersdomain.Identity, bool) {
	identity, ok := identityFrom(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
		return usersdomain.Identity{}, false
	}
	return identity, true
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
