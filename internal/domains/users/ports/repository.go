package ports

import (
	"context"
	"errors"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrForbidden = errors.New("access denied")

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
