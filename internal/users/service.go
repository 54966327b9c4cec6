package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

const minPasswordLength = 8

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]User, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	if id == uuid.Nil {
		return User{}, fmt.Errorf("%w: user id required", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name, email, password, role string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return User{}, fmt.Errorf("%w: name and email are required", httpx.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: email is malformed", httpx.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", httpx.ErrValidation, minPasswordLength)
	}
	switch role {
	case RoleAdmin, RoleStaff:
	case "":
		role = RoleStaff
	default:
		return User{}, fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, name, role string) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: user id required", httpx.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", httpx.ErrValidation)
	}
	switch role {
	case RoleAdmin, RoleStaff:
	default:
		return fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
	}
	return s.repo.Update(ctx, id, User{Name: name, Role: role})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: user id required", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
