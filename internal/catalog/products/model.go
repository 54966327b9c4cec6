package products

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog entry. Code is the human-facing unique
// identifier used on order lines and reports; ID is the storage key.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Size        string     `json:"size,omitempty"`
	Category    string     `json:"category,omitempty"`
	Price       float64    `json:"price"`
	Cost        float64    `json:"cost,omitempty"`
	Description string     `json:"description,omitempty"`
	SupplierID  *uuid.UUID `json:"supplierId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
