package orders

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type PlaceOrderRequest struct {
	OrderNumber   string             `json:"orderNumber" validate:"required"`
	VendorID      string             `json:"vendorId" validate:"required,uuid4"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         float64            `json:"total" validate:"required,gt=0"`
	Status        string             `json:"status" validate:"required,oneof=pending completed cancelled"`
	PaymentStatus string             `json:"paymentStatus" validate:"omitempty,oneof=unpaid paid"`
	CreatedBy     string             `json:"createdBy" validate:"required,uuid4"`
}

type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid4"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}
