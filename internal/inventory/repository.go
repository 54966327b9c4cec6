package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpilot-erp/stockpilot-erp/internal/catalog/products"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

// Executor is the slice of pgx that the upsert needs. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so order placement can reuse the same statement
// inside its transaction.
type Executor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const upsertSQL = `
	INSERT INTO inventory_records (id, product_id, quantity, location, last_updated)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (product_id) DO UPDATE SET
		quantity = inventory_records.quantity + EXCLUDED.quantity,
		location = CASE WHEN EXCLUDED.location <> '' THEN EXCLUDED.location ELSE inventory_records.location END,
		last_updated = EXCLUDED.last_updated
	RETURNING id, product_id, quantity, location, last_updated`

// ApplyDelta adds delta to the product's on-hand quantity, creating the
// record when none exists. An empty location keeps the stored one.
func ApplyDelta(ctx context.Context, db Executor, productID uuid.UUID, delta int, location string) (Record, error) {
	var rec Record
	row := db.QueryRow(ctx, upsertSQL, uuid.New(), productID, delta, location, time.Now())
	if err := row.Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &rec.Location, &rec.LastUpdated); err != nil {
		return Record{}, err
	}
	return rec, nil
}

type Repository interface {
	Adjust(ctx context.Context, productID uuid.UUID, delta int, location string) (Record, error)
	GetByProduct(ctx context.Context, productID uuid.UUID) (Record, error)
	ListWithProducts(ctx context.Context) ([]RecordWithProduct, error)
	Summarize(ctx context.Context) (Summary, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Adjust(ctx context.Context, productID uuid.UUID, delta int, location string) (Record, error) {
	return ApplyDelta(ctx, r.db, productID, delta, location)
}

func (r *repository) GetByProduct(ctx context.Context, productID uuid.UUID) (Record, error) {
	query := `SELECT id, product_id, quantity, location, last_updated FROM inventory_records WHERE product_id = $1`
	var rec Record
	err := r.db.QueryRow(ctx, query, productID).Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &rec.Location, &rec.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, httpx.ErrNotFound
	}
	return rec, err
}

func (r *repository) ListWithProducts(ctx context.Context) ([]RecordWithProduct, error) {
	query := `
		SELECT
			i.id, i.product_id, i.quantity, i.location, i.last_updated,
			p.id, p.code, p.name, p.size, p.category, p.price, p.cost, p.description, p.supplier_id, p.created_at, p.updated_at
		FROM inventory_records i
		LEFT JOIN products p ON p.id = i.product_id
		ORDER BY i.last_updated DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecordWithProduct
	for rows.Next() {
		var item RecordWithProduct
		var (
			pID          *uuid.UUID
			pCode        *string
			pName        *string
			pSize        *string
			pCategory    *string
			pPrice       *float64
			pCost        *float64
			pDescription *string
			pSupplierID  *uuid.UUID
			pCreatedAt   *time.Time
			pUpdatedAt   *time.Time
		)
		err := rows.Scan(
			&item.ID, &item.ProductID, &item.Quantity, &item.Location, &item.LastUpdated,
			&pID, &pCode, &pName, &pSize, &pCategory, &pPrice, &pCost, &pDescription, &pSupplierID, &pCreatedAt, &pUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if pID != nil {
			item.Product = &products.Product{
				ID:          *pID,
				Code:        *pCode,
				Name:        *pName,
				Size:        *pSize,
				Category:    *pCategory,
				Price:       *pPrice,
				Cost:        *pCost,
				Description: *pDescription,
				SupplierID:  pSupplierID,
				CreatedAt:   *pCreatedAt,
				UpdatedAt:   *pUpdatedAt,
			}
		}
		item.Level = item.Record.Level()
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *repository) Summarize(ctx context.Context) (Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COUNT(*) FILTER (WHERE quantity < $1),
			COUNT(*) FILTER (WHERE quantity >= $1 AND quantity <= $2),
			COUNT(*) FILTER (WHERE quantity > $2)
		FROM inventory_records`

	var s Summary
	err := r.db.QueryRow(ctx, query, lowThreshold, highThreshold).
		Scan(&s.TotalRecords, &s.TotalQuantity, &s.LowCount, &s.MediumCount, &s.HighCount)
	return s, err
}
