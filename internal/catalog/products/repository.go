package products

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

const productColumns = `id, code, name, size, category, price, cost, description, supplier_id, created_at, updated_at`

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id uuid.UUID, product Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Size, &p.Category, &p.Price, &p.Cost, &p.Description, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		p := strconv.Itoa(argCount)
		where += ` AND (code ILIKE $` + p + ` OR name ILIKE $` + p + ` OR category ILIKE $` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.SupplierID != nil {
		argCount++
		where += ` AND supplier_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.SupplierID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)

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

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO products (id, code, name, size, category, price, cost, description, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now()
	product.ID = uuid.New()
	_, err := r.db.Exec(ctx, query, product.ID, product.Code, product.Name, product.Size, product.Category,
		product.Price, product.Cost, product.Description, product.SupplierID, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, httpx.ErrConflict
		}
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

// Update leaves code untouched: product identity is immutable once created.
func (r *repository) Update(ctx context.Context, id uuid.UUID, product Product) error {
	query := `UPDATE products SET name = $1, size = $2, category = $3, price = $4, cost = $5, description = $6, supplier_id = $7, updated_at = $8 WHERE id = $9`
	tag, err := r.db.Exec(ctx, query, product.Name, product.Size, product.Category, product.Price,
		product.Cost, product.Description, product.SupplierID, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
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
	case "price":
		return "price " + dir
	case "category":
		return "category " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
