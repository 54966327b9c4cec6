package products

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	if id == uuid.Nil {
		return Product{}, fmt.Errorf("%w: product id required", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (Product, error) {
	if code == "" {
		return Product{}, fmt.Errorf("%w: product code required", httpx.ErrValidation)
	}
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) Create(ctx context.Context, form ProductForm) (Product, error) {
	if err := validate.Struct(form); err != nil {
		return Product{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.Create(ctx, form.toModel())
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, form ProductForm) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: product id required", httpx.ErrValidation)
	}
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.Update(ctx, id, form.toModel())
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: product id required", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
