package orders

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/vendors"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

var errPoisonedItem = errors.New("simulated insert failure")

// memoryStore emulates the transactional contract: either the order, its
// items and the inventory deltas all land, or none of them do.
type memoryStore struct {
	orders    map[string]OrderDetail
	inventory map[uuid.UUID]int
	vendors   map[uuid.UUID]*vendors.Vendor
	poisoned  uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:    map[string]OrderDetail{},
		inventory: map[uuid.UUID]int{},
		vendors:   map[uuid.UUID]*vendors.Vendor{},
	}
}

func (m *memoryStore) PlaceOrder(_ context.Context, order Order, items []OrderItem) (OrderDetail, error) {
	if _, exists := m.orders[order.OrderNumber]; exists {
		return OrderDetail{}, httpx.ErrConflict
	}
	for _, it := range items {
		if it.ProductID == m.poisoned {
			return OrderDetail{}, errPoisonedItem
		}
	}

	order.ID = uuid.New()
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
		m.inventory[items[i].ProductID] -= items[i].Quantity
	}
	detail := OrderDetail{Order: order, Items: items, Vendor: m.vendors[order.VendorID]}
	m.orders[order.OrderNumber] = detail
	return detail, nil
}

func (m *memoryStore) ListWithContext(_ context.Context) ([]OrderWithContext, error) {
	var out []OrderWithContext
	for _, d := range m.orders {
		out = append(out, OrderWithContext{Order: d.Order})
	}
	return out, nil
}

func (m *memoryStore) GetByNumber(_ context.Context, orderNumber string) (OrderDetail, error) {
	d, ok := m.orders[orderNumber]
	if !ok {
		return OrderDetail{}, httpx.ErrNotFound
	}
	return d, nil
}

func newTestService(store Store) *Service {
	return NewService(store, nil, slog.Default())
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		OrderNumber: "ORD-1001",
		VendorID:    uuid.New().String(),
		CreatedBy:   uuid.New().String(),
		Total:       150,
		Status:      StatusPending,
		Items: []OrderItemRequest{
			{ProductID: uuid.New().String(), Quantity: 10, Price: 10},
			{ProductID: uuid.New().String(), Quantity: 5, Price: 10},
		},
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	req := validRequest()
	detail, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	require.Equal(t, StatusPending, detail.Status)
	require.Equal(t, PaymentUnpaid, detail.PaymentStatus)
	require.Equal(t, 150.0, detail.Total)
	require.Equal(t, 100.0, detail.Items[0].LineTotal)

	first := uuid.MustParse(req.Items[0].ProductID)
	require.Equal(t, -10, store.inventory[first])
}

func TestPlaceOrderRejectsMissingFields(t *testing.T) {
	svc := newTestService(newMemoryStore())

	req := validRequest()
	req.OrderNumber = ""
	_, err := svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validRequest()
	req.Items = nil
	_, err = svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validRequest()
	req.Items[0].Quantity = 0
	_, err = svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validRequest()
	req.VendorID = "not-a-uuid"
	_, err = svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestPlaceOrderRequiresStatusAndTotal(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	req := validRequest()
	req.Status = ""
	_, err := svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validRequest()
	req.Total = 0
	_, err = svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validRequest()
	req.Status = "shipped"
	_, err = svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	// Nothing may commit on a rejected request.
	require.Empty(t, store.orders)
	require.Empty(t, store.inventory)
}

func TestPlaceOrderReturnsVendorForConfirmation(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	req := validRequest()
	vendorID := uuid.MustParse(req.VendorID)
	store.vendors[vendorID] = &vendors.Vendor{ID: vendorID, Code: "VEN-001", Name: "Acme Distribution"}

	detail, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, detail.Vendor)
	require.Equal(t, "Acme Distribution", detail.Vendor.Name)
	require.Len(t, detail.Items, 2)
}

func TestPlaceOrderDuplicateNumberConflicts(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	req := validRequest()
	_, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	productID := uuid.MustParse(req.Items[0].ProductID)
	before := store.inventory[productID]

	dup := validRequest()
	dup.OrderNumber = req.OrderNumber
	dup.Items = []OrderItemRequest{{ProductID: req.Items[0].ProductID, Quantity: 99, Price: 1}}
	_, err = svc.PlaceOrder(context.Background(), dup)
	require.ErrorIs(t, err, httpx.ErrConflict)

	// The rejected order must leave no inventory trace.
	require.Equal(t, before, store.inventory[productID])
}

func TestPlaceOrderAllowsOversell(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	req := validRequest()
	req.Items = req.Items[:1]
	req.Items[0].Quantity = 40

	_, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	productID := uuid.MustParse(req.Items[0].ProductID)
	require.Equal(t, -40, store.inventory[productID])
}

func TestPlaceOrderFailureLeavesNothingBehind(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	req := validRequest()
	store.poisoned = uuid.MustParse(req.Items[1].ProductID)

	_, err := svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, errPoisonedItem)

	_, err = svc.GetByNumber(context.Background(), req.OrderNumber)
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Empty(t, store.inventory)
}

func TestPlaceOrderPreservesCallerTotal(t *testing.T) {
	svc := newTestService(newMemoryStore())

	req := validRequest()
	req.Total = 9999 // deliberately different from the line total sum

	detail, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 9999.0, detail.Total)
}
