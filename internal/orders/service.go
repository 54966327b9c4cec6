package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
)

type Service struct {
	store  Store
	audit  *shared.AuditLogger
	logger *slog.Logger
}

func NewService(store Store, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{store: store, audit: audit, logger: logger}
}

// PlaceOrder validates the request and commits the order atomically. The
// total is stored as supplied by the caller, even when it disagrees with
// the sum of line totals. Inventory is decremented per item; overselling
// is allowed and shows up as a negative ledger quantity.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (OrderDetail, error) {
	if err := validate.Struct(req); err != nil {
		return OrderDetail{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return OrderDetail{}, fmt.Errorf("%w: vendorId must be a valid UUID", httpx.ErrValidation)
	}
	createdBy, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		return OrderDetail{}, fmt.Errorf("%w: createdBy must be a valid UUID", httpx.ErrValidation)
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentUnpaid
	}

	order := Order{
		OrderNumber:   req.OrderNumber,
		VendorID:      vendorID,
		Total:         req.Total,
		Status:        req.Status,
		PaymentStatus: paymentStatus,
		CreatedBy:     createdBy,
	}

	items := make([]OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return OrderDetail{}, fmt.Errorf("%w: item productId must be a valid UUID", httpx.ErrValidation)
		}
		items = append(items, OrderItem{
			ProductID: productID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			LineTotal: float64(it.Quantity) * it.Price,
		})
	}

	detail, err := s.store.PlaceOrder(ctx, order, items)
	if err != nil {
		return OrderDetail{}, err
	}

	if s.audit != nil {
		if err := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  detail.CreatedBy.String(),
			Action:   "order.place",
			Entity:   "order",
			EntityID: detail.OrderNumber,
			Meta:     map[string]any{"total": detail.Total, "items": len(detail.Items)},
		}); err != nil {
			s.logger.Warn("audit order placement", "order", detail.OrderNumber, "error", err)
		}
	}

	return detail, nil
}

func (s *Service) ListWithContext(ctx context.Context) ([]OrderWithContext, error) {
	return s.store.ListWithContext(ctx)
}

func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (OrderDetail, error) {
	if orderNumber == "" {
		return OrderDetail{}, fmt.Errorf("%w: order number required", httpx.ErrValidation)
	}
	return s.store.GetByNumber(ctx, orderNumber)
}
