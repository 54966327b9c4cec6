package customers

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
	List(ctx context.Context, filters shared.ListFilters) ([]Customer, int, error)
	Get(ctx context.Context, id uuid.UUID) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, id uuid.UUID, customer Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const customerColumns = `id, name, contact, customer_ref_id, agent_id, address, email, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Customer, int, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR contact ILIKE $` + strconv.Itoa(argCount) + ` OR customer_ref_id ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.AgentID != nil {
		argCount++
		query += ` AND agent_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.AgentID)
	}

	countQuery := `SELECT COUNT(*) FROM customers WHERE 1=1`
	countArgs := []interface{}{}
	countArgCount := 0
	if filters.Search != "" {
		countArgCount++
		countQuery += ` AND (name ILIKE $` + strconv.Itoa(countArgCount) + ` OR contact ILIKE $` + strconv.Itoa(countArgCount) + ` OR customer_ref_id ILIKE $` + strconv.Itoa(countArgCount) + `)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}
	if filters.AgentID != nil {
		countArgCount++
		countQuery += ` AND agent_id = $` + strconv.Itoa(countArgCount)
		countArgs = append(countArgs, *filters.AgentID)
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

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, httpx.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	now := time.Now()
	customer.ID = uuid.New()
	_, err := r.db.Exec(ctx, `INSERT INTO customers (id, name, contact, customer_ref_id, agent_id, address, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		customer.ID, customer.Name, customer.Contact, customer.RefID, customer.AgentID, customer.Address, customer.Email, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, httpx.ErrConflict
		}
		return Customer{}, err
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return customer, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, customer Customer) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET name = $1, contact = $2, customer_ref_id = $3, agent_id = $4, address = $5, email = $6, updated_at = $7 WHERE id = $8`,
		customer.Name, customer.Contact, customer.RefID, customer.AgentID, customer.Address, customer.Email, time.Now(), id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Contact, &c.RefID, &c.AgentID, &c.Address, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	return c, err
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
	case "contact":
		return "contact " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
