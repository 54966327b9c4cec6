package vendors

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Vendor, int, error)
	Get(ctx context.Context, id uuid.UUID) (Vendor, error)
	Create(ctx context.Context, vendor Vendor) (Vendor, error)
	Update(ctx context.Context, id uuid.UUID, vendor Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Vendor, int, error) {
	query := `SELECT id, code, name, contact, email, phone, address, created_at, updated_at FROM vendors WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM vendors WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $1 OR code ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Code, &v.Name, &v.Contact, &v.Email, &v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		vendors = append(vendors, v)
	}
	return vendors, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Vendor, error) {
	query := `SELECT id, code, name, contact, email, phone, address, created_at, updated_at FROM vendors WHERE id = $1`
	var v Vendor
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Code, &v.Name, &v.Contact, &v.Email, &v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vendor{}, httpx.ErrNotFound
	}
	return v, err
}

func (r *repository) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	query := `INSERT INTO vendors (id, code, name, contact, email, phone, address, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	vendor.ID = uuid.New()
	_, err := r.db.Exec(ctx, query, vendor.ID, vendor.Code, vendor.Name, vendor.Contact, vendor.Email, vendor.Phone, vendor.Address, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Vendor{}, httpx.ErrConflict
		}
		return Vendor{}, err
	}
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	return vendor, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, vendor Vendor) error {
	query := `UPDATE vendors SET code = $1, name = $2, contact = $3, email = $4, phone = $5, address = $6, updated_at = $7 WHERE id = $8`
	tag, err := r.db.Exec(ctx, query, vendor.Code, vendor.Name, vendor.Contact, vendor.Email, vendor.Phone, vendor.Address, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return httpx.ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "code":
		return "code " + dir
	case "name":
		return "name " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
