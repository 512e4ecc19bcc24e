package application

import (
	"context"
	"errors"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

const recentOrderLimit = 5

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
	orders ports.OrderHistory
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer, orders ports.OrderHistory) *Service {
	if orders == nil {
		orders = ports.NoopOrderHistory
	}
	return &Service{repo: repo, tokens: tokens, orders: orders}
}

// Register creates a customer account with a hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, ports.ErrEmailTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}

// Login verifies credentials and mints a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", nil, mapError(ports.ErrInvalidCredentials)
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, mapError(ports.ErrInvalidCredentials)
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetProfile returns the account plus its most recent orders. Only the
// account owner or an administrator may read it.
func (s *Service) GetProfile(ctx context.Context, requester domain.Identity, userID int64) (*ports.Profile, error) {
	if !requester.CanAccessUser(userID) {
		return nil, ports.ErrForbidden
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.RecentOrdersByUser(ctx, userID, recentOrderLimit)
	if err != nil {
		return nil, err
	}
	return &ports.Profile{User: user, RecentOrders: recent}, nil
}

var _ ports.Service = (*Service)(nil)
