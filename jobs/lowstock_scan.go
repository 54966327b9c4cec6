package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpilot-erp/stockpilot-erp/internal/inventory"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
)

// LowStockScanJob sweeps the inventory ledger for products classified as
// Low and records an audit row per hit so operators have a trail.
type LowStockScanJob struct {
	Pool   *pgxpool.Pool
	Audit  *shared.AuditLogger
	Logger *slog.Logger
	clock  func() time.Time
}

// NewLowStockScanJob initialises the low stock scan handler.
func NewLowStockScanJob(pool *pgxpool.Pool, audit *shared.AuditLogger, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{
		Pool:   pool,
		Audit:  audit,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the low stock sweep.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := j.clock()
	logger := j.Logger.With(slog.Int("limit", payload.Limit))
	logger.Info("starting low stock scan")

	query := `
		SELECT i.product_id, i.quantity, i.location, COALESCE(p.code, ''), COALESCE(p.name, '')
		FROM inventory_records i
		LEFT JOIN products p ON p.id = i.product_id
		ORDER BY i.quantity ASC`
	rows, err := j.Pool.Query(ctx, query)
	if err != nil {
		logger.Error("scan query failed", slog.Any("error", err))
		return err
	}
	defer rows.Close()

	scanned := 0
	flagged := 0
	for rows.Next() {
		var (
			productID string
			quantity  int
			location  string
			code      string
			name      string
		)
		if err := rows.Scan(&productID, &quantity, &location, &code, &name); err != nil {
			return err
		}
		scanned++
		if inventory.Classify(quantity) != inventory.StockLow {
			continue
		}
		flagged++
		logger.Warn("low stock detected",
			slog.String("product_id", productID),
			slog.String("code", code),
			slog.Int("quantity", quantity),
			slog.String("location", location),
		)
		if j.Audit != nil {
			if err := j.Audit.Record(ctx, shared.AuditLog{
				ActorID:  "system",
				Action:   "inventory.lowstock",
				Entity:   "product",
				EntityID: productID,
				Meta:     map[string]any{"quantity": quantity, "code": code, "name": name},
			}); err != nil {
				logger.Warn("audit low stock", slog.Any("error", err))
			}
		}
		if payload.Limit > 0 && flagged >= payload.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Info("completed low stock scan",
		slog.Int("scanned", scanned),
		slog.Int("flagged", flagged),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
