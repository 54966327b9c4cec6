package agents

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Agent, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Agent, error) {
	if id == uuid.Nil {
		return Agent{}, fmt.Errorf("%w: agent id required", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, agent Agent) (Agent, error) {
	if err := s.validate(agent); err != nil {
		return Agent{}, err
	}
	return s.repo.Create(ctx, agent)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, agent Agent) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: agent id required", httpx.ErrValidation)
	}
	if err := s.validate(agent); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, agent)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: agent id required", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(a Agent) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: agent name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("%w: agent city is required", httpx.ErrValidation)
	}
	return nil
}
