package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/vendors"
	"github.com/stockpilot-erp/stockpilot-erp/internal/users"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Order is a vendor purchase. OrderNumber is the business key shown on
// documents; placing two orders with the same number is a conflict.
type Order struct {
	ID            uuid.UUID `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	VendorID      uuid.UUID `json:"vendorId"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedBy     uuid.UUID `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderItem is owned by its order and never addressed on its own.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	LineTotal float64   `json:"lineTotal"`
}

// OrderWithContext carries the joined vendor and creator for list views.
// Either pointer is nil when the referenced row is gone; a dangling
// reference never fails the listing.
type OrderWithContext struct {
	Order
	Vendor        *vendors.Vendor `json:"vendor"`
	CreatedByUser *users.User     `json:"createdByUser"`
}

// OrderDetail is a single order with its full item list.
type OrderDetail struct {
	Order
	Items  []OrderItem     `json:"items"`
	Vendor *vendors.Vendor `json:"vendor"`
}
