package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/users"
)

type stubFinder struct {
	byEmail map[string]users.User
}

func (s *stubFinder) FindByEmail(_ context.Context, email string) (users.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return users.User{}, httpx.ErrNotFound
	}
	return u, nil
}

func seededFinder(t *testing.T, email, password string) *stubFinder {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &stubFinder{byEmail: map[string]users.User{
		email: {
			ID:           uuid.New(),
			Name:         "Ana Silva",
			Email:        email,
			PasswordHash: string(hash),
			Role:         users.RoleAdmin,
		},
	}}
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := NewService(seededFinder(t, "ana@example.com", "s3cret-pass"))

	user, err := svc.Authenticate(context.Background(), "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	svc := NewService(seededFinder(t, "ana@example.com", "s3cret-pass"))

	_, err := svc.Authenticate(context.Background(), "  Ana@Example.COM ", "s3cret-pass")
	require.NoError(t, err)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(seededFinder(t, "ana@example.com", "s3cret-pass"))

	_, err := svc.Authenticate(context.Background(), "ana@example.com", "wrong-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(seededFinder(t, "ana@example.com", "s3cret-pass"))

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateRequiresCredentials(t *testing.T) {
	svc := NewService(seededFinder(t, "ana@example.com", "s3cret-pass"))

	_, err := svc.Authenticate(context.Background(), "", "s3cret-pass")
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Authenticate(context.Background(), "ana@example.com", "")
	require.ErrorIs(t, err, httpx.ErrValidation)
}
