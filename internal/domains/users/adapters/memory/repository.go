package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	byID    map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{byID: map[int64]*domain.User{}, byEmail: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byEmail[clone.Email]; ok && existing != clone.ID {
		return nil, ports.ErrEmailTaken
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		clone := *user
		list = append(list, &clone)
	}
	return list, nil
}
