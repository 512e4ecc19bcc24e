package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

var _ ports.TokenIssuer = (*JWT)(nil)
var _ ports.TokenVerifier = (*JWT)(nil)

// JWT issues and verifies HMAC-signed bearer tokens carrying the user id
// and role.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWT builds a token codec. TTL defaults to 24h when non-positive.
func NewJWT(secret string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source, used by tests.
func (j *JWT) WithClock(now func() time.Time) *JWT {
	j.now = now
	return j
}

// Issue signs a token for the given user.
func (j *JWT) Issue(user *domain.User) (string, error) {
	if user == nil {
		return "", errors.New("user is nil")
	}
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	})
	return token.SignedString(j.secret)
}

// Verify parses and validates a token, returning the caller identity.
func (j *JWT) Verify(raw string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil || !parsed.Valid {
		return domain.Identity{}, ports.ErrInvalidToken
	}
	c, ok := parsed.Claims.(*claims)
	if !ok {
		return domain.Identity{}, ports.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, ports.ErrInvalidToken
	}
	role := domain.Role(c.Role)
	if !role.Valid() {
		return domain.Identity{}, ports.ErrInvalidToken
	}
	return domain.Identity{UserID: userID, Role: role}, nil
}
