package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

func newTestUser(id int64, role domain.Role) *domain.User {
	return &domain.User{ID: id, Name: "Ada", Email: "ada@example.com", Role: role}
}

func TestJWT_IssueAndVerify(t *testing.T) {
	codec, err := NewJWT("test-secret", time.Hour)
	require.NoError(t, err)

	raw, err := codec.Issue(newTestUser(42, domain.RoleAdmin))
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	identity, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, int64(42), identity.UserID)
	require.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestJWT_EmptySecret(t *testing.T) {
	_, err := NewJWT("", time.Hour)
	require.Error(t, err)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWT("secret-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewJWT("secret-two", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(newTestUser(1, domain.RoleCustomer))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	issued := time.Now()
	codec, err := NewJWT("test-secret", time.Minute)
	require.NoError(t, err)
	codec.WithClock(func() time.Time { return issued })

	raw, err := codec.Issue(newTestUser(1, domain.RoleCustomer))
	require.NoError(t, err)

	codec.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })
	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	codec, err := NewJWT("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify("not-a-token")
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}
