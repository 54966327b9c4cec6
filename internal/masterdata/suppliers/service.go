package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Supplier, error) {
	if id == uuid.Nil {
		return Supplier{}, fmt.Errorf("%w: supplier id required", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	if err := validate(supplier); err != nil {
		return Supplier{}, err
	}
	return s.repo.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, supplier Supplier) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: supplier id required", httpx.ErrValidation)
	}
	if err := validate(supplier); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, supplier)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: supplier id required", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func validate(s Supplier) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", httpx.ErrValidation)
	}
	switch s.Status {
	case "", StatusActive, StatusInactive:
	default:
		return fmt.Errorf("%w: supplier status must be %q or %q", httpx.ErrValidation, StatusActive, StatusInactive)
	}
	return nil
}
