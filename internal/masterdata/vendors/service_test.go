package vendors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type memoryRepo struct {
	items map[uuid.UUID]Vendor
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[uuid.UUID]Vendor{}}
}

func (m *memoryRepo) List(_ context.Context, filters shared.ListFilters) ([]Vendor, int, error) {
	var out []Vendor
	for _, v := range m.items {
		if filters.Search != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, v)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Vendor, error) {
	v, ok := m.items[id]
	if !ok {
		return Vendor{}, httpx.ErrNotFound
	}
	return v, nil
}

func (m *memoryRepo) Create(_ context.Context, vendor Vendor) (Vendor, error) {
	for _, existing := range m.items {
		if existing.Code == vendor.Code {
			return Vendor{}, httpx.ErrConflict
		}
	}
	vendor.ID = uuid.New()
	m.items[vendor.ID] = vendor
	return vendor, nil
}

func (m *memoryRepo) Update(_ context.Context, id uuid.UUID, vendor Vendor) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	vendor.ID = id
	m.items[id] = vendor
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestServiceCreateValidatesRequiredFields(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Vendor{Name: "Acme Distribution"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Vendor{Code: "VEN-001"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestServiceCreateRejectsDuplicateCode(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Vendor{Code: "VEN-001", Name: "Acme Distribution"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Vendor{Code: "VEN-001", Name: "Other Distribution"})
	require.ErrorIs(t, err, httpx.ErrConflict)
}

func TestServiceGetUnknownVendor(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestServiceUpdateRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Vendor{Code: "VEN-002", Name: "Northwind"})
	require.NoError(t, err)

	created.Name = "Northwind Trading"
	require.NoError(t, svc.Update(context.Background(), created.ID, created))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Northwind Trading", got.Name)
}
