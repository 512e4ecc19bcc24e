package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	ErrInvalidRole  = errors.New("user role is invalid")
)

// bcryptCost matches the work factor existing password hashes were seeded with.
const bcryptCost = 12

// Role is the closed set of capabilities a user can hold.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanReadAllOrders is the single authorization predicate for cross-user
// order visibility.
func (r Role) CanReadAllOrders() bool { return r.IsAdmin() }

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller as derived from a verified bearer
// token. Services trust it as-is.
type Identity struct {
	UserID int64
	Role   Role
}

// CanAccessUser reports whether the identity may read the given user's data.
func (i Identity) CanAccessUser(userID int64) bool {
	return i.UserID == userID || i.Role.IsAdmin()
}

// User is the account aggregate.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser builds a customer account, hashing the supplied password.
func NewUser(name, email, password string) (*User, error) {
	user := &User{Role: RoleCustomer}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes and validates the address.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword enforces minimal strength and stores the bcrypt hash.
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the stored hash with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetName(u.Name); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return ErrWeakPassword
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}
