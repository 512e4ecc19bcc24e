package ports

import (
	"errors"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a bearer token and extracts the caller identity.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
