package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type memoryRepo struct {
	items map[uuid.UUID]Product
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[uuid.UUID]Product{}}
}

func (m *memoryRepo) List(_ context.Context, _ shared.ListFilters) ([]Product, int, error) {
	var out []Product
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Product, error) {
	p, ok := m.items[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	return p, nil
}

func (m *memoryRepo) GetByCode(_ context.Context, code string) (Product, error) {
	for _, p := range m.items {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, httpx.ErrNotFound
}

func (m *memoryRepo) Create(_ context.Context, product Product) (Product, error) {
	for _, existing := range m.items {
		if existing.Code == product.Code {
			return Product{}, httpx.ErrConflict
		}
	}
	product.ID = uuid.New()
	m.items[product.ID] = product
	return product, nil
}

func (m *memoryRepo) Update(_ context.Context, id uuid.UUID, product Product) error {
	existing, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	product.ID = id
	product.Code = existing.Code
	m.items[id] = product
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), ProductForm{Name: "Mineral Water 600ml", Price: 3.5})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), ProductForm{Code: "PRD-001", Price: 3.5})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), ProductForm{Code: "PRD-001", Name: "Mineral Water 600ml", Price: -1})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateDuplicateCodeConflicts(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), ProductForm{Code: "PRD-001", Name: "Mineral Water 600ml", Price: 3.5})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ProductForm{Code: "PRD-001", Name: "Sparkling Water 600ml", Price: 4})
	require.ErrorIs(t, err, httpx.ErrConflict)
}

func TestUpdateKeepsCodeImmutable(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), ProductForm{Code: "PRD-002", Name: "Green Tea 500ml", Price: 5})
	require.NoError(t, err)

	err = svc.Update(context.Background(), created.ID, ProductForm{Code: "PRD-999", Name: "Green Tea 500ml", Price: 5.5})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "PRD-002", got.Code)
	require.Equal(t, 5.5, got.Price)
}
