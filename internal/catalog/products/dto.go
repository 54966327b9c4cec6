package products

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ProductForm struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Size        string  `json:"size"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Description string  `json:"description"`
	SupplierID  string  `json:"supplierId" validate:"omitempty,uuid4"`
}

func (f ProductForm) toModel() Product {
	p := Product{
		Code:        f.Code,
		Name:        f.Name,
		Size:        f.Size,
		Category:    f.Category,
		Price:       f.Price,
		Cost:        f.Cost,
		Description: f.Description,
	}
	if f.SupplierID != "" {
		if id, err := uuid.Parse(f.SupplierID); err == nil {
			p.SupplierID = &id
		}
	}
	return p
}
