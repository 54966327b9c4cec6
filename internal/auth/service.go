package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/users"
)

// UserFinder is the slice of the users repository that login needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (users.User, error)
}

type Service struct {
	userFinder UserFinder
}

func NewService(userFinder UserFinder) *Service {
	return &Service{userFinder: userFinder}
}

// Authenticate verifies the credentials against the stored bcrypt hash.
// Unknown email and wrong password produce the same error so the
// response does not leak which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return users.User{}, fmt.Errorf("%w: email and password are required", httpx.ErrValidation)
	}

	user, err := s.userFinder.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) || errors.Is(err, shared.ErrNotFound) {
			return users.User{}, shared.ErrInvalidCredentials
		}
		return users.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}
