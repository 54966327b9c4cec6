package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type memoryRepo struct {
	byProduct map[uuid.UUID]Record
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byProduct: map[uuid.UUID]Record{}}
}

func (m *memoryRepo) Adjust(_ context.Context, productID uuid.UUID, delta int, location string) (Record, error) {
	rec, ok := m.byProduct[productID]
	if !ok {
		rec = Record{ID: uuid.New(), ProductID: productID}
	}
	rec.Quantity += delta
	if location != "" {
		rec.Location = location
	}
	rec.LastUpdated = time.Now()
	m.byProduct[productID] = rec
	return rec, nil
}

func (m *memoryRepo) GetByProduct(_ context.Context, productID uuid.UUID) (Record, error) {
	rec, ok := m.byProduct[productID]
	if !ok {
		return Record{}, httpx.ErrNotFound
	}
	return rec, nil
}

func (m *memoryRepo) ListWithProducts(_ context.Context) ([]RecordWithProduct, error) {
	var out []RecordWithProduct
	for _, rec := range m.byProduct {
		out = append(out, RecordWithProduct{Record: rec, Level: rec.Level()})
	}
	return out, nil
}

func (m *memoryRepo) Summarize(_ context.Context) (Summary, error) {
	var s Summary
	for _, rec := range m.byProduct {
		s.TotalRecords++
		s.TotalQuantity += rec.Quantity
		switch rec.Level() {
		case StockLow:
			s.LowCount++
		case StockMedium:
			s.MediumCount++
		default:
			s.HighCount++
		}
	}
	return s, nil
}

func TestClassify(t *testing.T) {
	require.Equal(t, StockLow, Classify(-5))
	require.Equal(t, StockLow, Classify(0))
	require.Equal(t, StockLow, Classify(36))
	require.Equal(t, StockMedium, Classify(37))
	require.Equal(t, StockMedium, Classify(72))
	require.Equal(t, StockHigh, Classify(73))
	require.Equal(t, StockHigh, Classify(500))
}

func TestAdjustStockAccumulates(t *testing.T) {
	svc := NewService(newMemoryRepo())
	productID := uuid.New()

	rec, err := svc.AdjustStock(context.Background(), productID, 10, "warehouse-a")
	require.NoError(t, err)
	require.Equal(t, 10, rec.Quantity)

	rec, err = svc.AdjustStock(context.Background(), productID, -3, "")
	require.NoError(t, err)
	require.Equal(t, 7, rec.Quantity)
}

func TestAdjustStockPreservesLocationOnEmptyInput(t *testing.T) {
	svc := NewService(newMemoryRepo())
	productID := uuid.New()

	_, err := svc.AdjustStock(context.Background(), productID, 5, "warehouse-a")
	require.NoError(t, err)

	rec, err := svc.AdjustStock(context.Background(), productID, 5, "")
	require.NoError(t, err)
	require.Equal(t, "warehouse-a", rec.Location)

	rec, err = svc.AdjustStock(context.Background(), productID, 1, "warehouse-b")
	require.NoError(t, err)
	require.Equal(t, "warehouse-b", rec.Location)
}

func TestAdjustStockAllowsNegativeQuantity(t *testing.T) {
	svc := NewService(newMemoryRepo())
	productID := uuid.New()

	rec, err := svc.AdjustStock(context.Background(), productID, -12, "")
	require.NoError(t, err)
	require.Equal(t, -12, rec.Quantity)
	require.Equal(t, StockLow, rec.Level())
}

func TestAdjustStockZeroDeltaCreatesAndRefreshes(t *testing.T) {
	svc := NewService(newMemoryRepo())
	productID := uuid.New()

	rec, err := svc.AdjustStock(context.Background(), productID, 0, "warehouse-a")
	require.NoError(t, err)
	require.Equal(t, 0, rec.Quantity)
	require.Equal(t, "warehouse-a", rec.Location)
	require.False(t, rec.LastUpdated.IsZero())

	before := rec.LastUpdated
	rec, err = svc.AdjustStock(context.Background(), productID, 0, "")
	require.NoError(t, err)
	require.Equal(t, 0, rec.Quantity)
	require.False(t, rec.LastUpdated.Before(before))
}

func TestAdjustStockRejectsNilProduct(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.AdjustStock(context.Background(), uuid.Nil, 5, "")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestSummarizeCountsLevels(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), uuid.New(), 10, "")
	require.NoError(t, err)
	_, err = svc.AdjustStock(context.Background(), uuid.New(), 50, "")
	require.NoError(t, err)
	_, err = svc.AdjustStock(context.Background(), uuid.New(), 100, "")
	require.NoError(t, err)

	s, err := svc.Summarize(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, s.TotalRecords)
	require.Equal(t, 160, s.TotalQuantity)
	require.Equal(t, 1, s.LowCount)
	require.Equal(t, 1, s.MediumCount)
	require.Equal(t, 1, s.HighCount)
}
