package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpilot-erp/stockpilot-erp/internal/inventory"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/vendors"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/db"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
	"github.com/stockpilot-erp/stockpilot-erp/internal/users"
)

type Store interface {
	// PlaceOrder persists the order, its items and the matching inventory
	// decrements in a single transaction, then returns the order joined
	// with its vendor for confirmation display. A duplicate order number
	// yields ErrConflict and leaves nothing behind.
	PlaceOrder(ctx context.Context, order Order, items []OrderItem) (OrderDetail, error)
	ListWithContext(ctx context.Context) ([]OrderWithContext, error)
	GetByNumber(ctx context.Context, orderNumber string) (OrderDetail, error)
}

type store struct {
	db *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) Store {
	return &store{db: pool}
}

func (s *store) PlaceOrder(ctx context.Context, order Order, items []OrderItem) (OrderDetail, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()

	var vendor *vendors.Vendor
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		// The unique index on order_number is the real guard; the explicit
		// check turns the common duplicate into a clean conflict without
		// relying on the error path.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)`, order.OrderNumber).Scan(&exists); err != nil {
			return fmt.Errorf("check order number: %w", err)
		}
		if exists {
			return httpx.ErrConflict
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, order_number, vendor_id, total, status, payment_status, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID, order.OrderNumber, order.VendorID, order.Total, order.Status, order.PaymentStatus, order.CreatedBy, order.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return httpx.ErrConflict
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range items {
			items[i].ID = uuid.New()
			items[i].OrderID = order.ID
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, price, line_total)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				items[i].ID, items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].Price, items[i].LineTotal)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			if _, err := inventory.ApplyDelta(ctx, tx, items[i].ProductID, -items[i].Quantity, ""); err != nil {
				return fmt.Errorf("apply inventory delta: %w", err)
			}
		}

		// Joined for the confirmation response. A missing vendor row stays
		// nil rather than failing the placement.
		var v vendors.Vendor
		err = tx.QueryRow(ctx, `SELECT id, code, name, contact, email, phone, address, created_at, updated_at FROM vendors WHERE id = $1`, order.VendorID).
			Scan(&v.ID, &v.Code, &v.Name, &v.Contact, &v.Email, &v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt)
		switch {
		case err == nil:
			vendor = &v
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return fmt.Errorf("load vendor: %w", err)
		}
		return nil
	})
	if err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{Order: order, Items: items, Vendor: vendor}, nil
}

func (s *store) ListWithContext(ctx context.Context) ([]OrderWithContext, error) {
	query := `
		SELECT
			o.id, o.order_number, o.vendor_id, o.total, o.status, o.payment_status, o.created_by, o.created_at,
			v.id, v.code, v.name, v.contact, v.email, v.phone, v.address, v.created_at, v.updated_at,
			u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		FROM orders o
		LEFT JOIN vendors v ON v.id = o.vendor_id
		LEFT JOIN users u ON u.id = o.created_by
		ORDER BY o.created_at ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderWithContext
	for rows.Next() {
		var item OrderWithContext
		var (
			vID        *uuid.UUID
			vCode      *string
			vName      *string
			vContact   *string
			vEmail     *string
			vPhone     *string
			vAddress   *string
			vCreatedAt *time.Time
			vUpdatedAt *time.Time

			uID        *uuid.UUID
			uName      *string
			uEmail     *string
			uRole      *string
			uCreatedAt *time.Time
			uUpdatedAt *time.Time
		)
		err := rows.Scan(
			&item.ID, &item.OrderNumber, &item.VendorID, &item.Total, &item.Status, &item.PaymentStatus, &item.CreatedBy, &item.CreatedAt,
			&vID, &vCode, &vName, &vContact, &vEmail, &vPhone, &vAddress, &vCreatedAt, &vUpdatedAt,
			&uID, &uName, &uEmail, &uRole, &uCreatedAt, &uUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if vID != nil {
			item.Vendor = &vendors.Vendor{
				ID: *vID, Code: *vCode, Name: *vName, Contact: *vContact,
				Email: *vEmail, Phone: *vPhone, Address: *vAddress,
				CreatedAt: *vCreatedAt, UpdatedAt: *vUpdatedAt,
			}
		}
		if uID != nil {
			item.CreatedByUser = &users.User{
				ID: *uID, Name: *uName, Email: *uEmail, Role: *uRole,
				CreatedAt: *uCreatedAt, UpdatedAt: *uUpdatedAt,
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *store) GetByNumber(ctx context.Context, orderNumber string) (OrderDetail, error) {
	query := `
		SELECT
			o.id, o.order_number, o.vendor_id, o.total, o.status, o.payment_status, o.created_by, o.created_at,
			v.id, v.code, v.name, v.contact, v.email, v.phone, v.address, v.created_at, v.updated_at
		FROM orders o
		LEFT JOIN vendors v ON v.id = o.vendor_id
		WHERE o.order_number = $1`

	var detail OrderDetail
	var (
		vID        *uuid.UUID
		vCode      *string
		vName      *string
		vContact   *string
		vEmail     *string
		vPhone     *string
		vAddress   *string
		vCreatedAt *time.Time
		vUpdatedAt *time.Time
	)
	err := s.db.QueryRow(ctx, query, orderNumber).Scan(
		&detail.ID, &detail.OrderNumber, &detail.VendorID, &detail.Total, &detail.Status, &detail.PaymentStatus, &detail.CreatedBy, &detail.CreatedAt,
		&vID, &vCode, &vName, &vContact, &vEmail, &vPhone, &vAddress, &vCreatedAt, &vUpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return OrderDetail{}, httpx.ErrNotFound
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if vID != nil {
		detail.Vendor = &vendors.Vendor{
			ID: *vID, Code: *vCode, Name: *vName, Contact: *vContact,
			Email: *vEmail, Phone: *vPhone, Address: *vAddress,
			CreatedAt: *vCreatedAt, UpdatedAt: *vUpdatedAt,
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price, line_total
		FROM order_items WHERE order_id = $1`, detail.ID)
	if err != nil {
		return OrderDetail{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.LineTotal); err != nil {
			return OrderDetail{}, err
		}
		detail.Items = append(detail.Items, item)
	}
	return detail, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
