package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type Service struct {
	repo  Repository
	group singleflight.Group
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AdjustStock applies a signed delta to a product's ledger record. The
// record is created when missing, so the first movement for a product
// needs no prior setup. A zero delta is a valid movement: it still
// creates the record and refreshes lastUpdated.
func (s *Service) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, location string) (Record, error) {
	if productID == uuid.Nil {
		return Record{}, fmt.Errorf("%w: product id required", httpx.ErrValidation)
	}
	return s.repo.Adjust(ctx, productID, delta, location)
}

func (s *Service) GetByProduct(ctx context.Context, productID uuid.UUID) (Record, error) {
	if productID == uuid.Nil {
		return Record{}, fmt.Errorf("%w: product id required", httpx.ErrValidation)
	}
	return s.repo.GetByProduct(ctx, productID)
}

// ListWithProducts returns the full ledger joined to the catalog. Records
// whose product was deleted keep a nil Product rather than disappearing.
func (s *Service) ListWithProducts(ctx context.Context) ([]RecordWithProduct, error) {
	return s.repo.ListWithProducts(ctx)
}

// Summarize collapses concurrent dashboard reads into one query.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	v, err, _ := s.group.Do("summary", func() (any, error) {
		return s.repo.Summarize(ctx)
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}
