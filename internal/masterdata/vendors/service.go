package vendors

import (
	"context"
	"fmt"

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Vendor, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Vendor, error) {
	if id == uuid.Nil {
		return Vendor{}, fmt.Errorf("%w: vendor id required", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	if err := s.validate(vendor); err != nil {
		return Vendor{}, err
	}
	return s.repo.Create(ctx, vendor)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, vendor Vendor) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: vendor id required", httpx.ErrValidation)
	}
	if err := s.validate(vendor); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, vendor)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: vendor id required", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
