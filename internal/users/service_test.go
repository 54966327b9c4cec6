package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type memoryRepo struct {
	items map[uuid.UUID]User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[uuid.UUID]User{}}
}

func (m *memoryRepo) List(_ context.Context, _ shared.ListFilters) ([]User, int, error) {
	var out []User
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (User, error) {
	u, ok := m.items[id]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return u, nil
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, httpx.ErrNotFound
}

func (m *memoryRepo) Create(_ context.Context, user User) (User, error) {
	for _, existing := range m.items {
		if existing.Email == user.Email {
			return User{}, httpx.ErrConflict
		}
	}
	user.ID = uuid.New()
	m.items[user.ID] = user
	return user, nil
}

func (m *memoryRepo) Update(_ context.Context, id uuid.UUID, user User) error {
	existing, ok := m.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	existing.Name = user.Name
	existing.Role = user.Role
	m.items[id] = existing
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreateHashesPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())

	user, err := svc.Create(context.Background(), "Ana Silva", "ana@example.com", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateRejectsShortPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), "Ana Silva", "ana@example.com", "short", RoleStaff)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateNormalizesEmailAndDefaultsRole(t *testing.T) {
	svc := NewService(newMemoryRepo())

	user, err := svc.Create(context.Background(), "Ana Silva", "  Ana@Example.COM ", "s3cret-pass", "")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, RoleStaff, user.Role)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), "Ana Silva", "ana@example.com", "s3cret-pass", RoleStaff)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Ana Souza", "ana@example.com", "other-pass1", RoleStaff)
	require.ErrorIs(t, err, httpx.ErrConflict)
}
