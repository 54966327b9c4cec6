package agents

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Agent, int, error)
	Get(ctx context.Context, id uuid.UUID) (Agent, error)
	Create(ctx context.Context, agent Agent) (Agent, error)
	Update(ctx context.Context, id uuid.UUID, agent Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Agent, int, error) {
	query := `SELECT id, name, contact, email, city, created_at, updated_at FROM agents WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR contact ILIKE $` + strconv.Itoa(argCount) + ` OR city ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM agents WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $1 OR contact ILIKE $1 OR city ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if filters.SortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch filters.SortBy {
	case "city":
		query += " ORDER BY city " + dir
	case "created_at":
		query += " ORDER BY created_at " + dir
	default:
		query += " ORDER BY name " + dir
	}

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

	var agents []Agent
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Contact, &a.Email, &a.City, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		agents = append(agents, a)
	}
	return agents, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Agent, error) {
	var a Agent
	err := r.db.QueryRow(ctx, `SELECT id, name, contact, email, city, created_at, updated_at FROM agents WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Contact, &a.Email, &a.City, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, httpx.ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, agent Agent) (Agent, error) {
	now := time.Now()
	agent.ID = uuid.New()
	_, err := r.db.Exec(ctx, `INSERT INTO agents (id, name, contact, email, city, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		agent.ID, agent.Name, agent.Contact, agent.Email, agent.City, now, now)
	if err != nil {
		return Agent{}, err
	}
	agent.CreatedAt = now
	agent.UpdatedAt = now
	return agent, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, agent Agent) error {
	tag, err := r.db.Exec(ctx, `UPDATE agents SET name = $1, contact = $2, email = $3, city = $4, updated_at = $5 WHERE id = $6`,
		agent.Name, agent.Contact, agent.Email, agent.City, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
