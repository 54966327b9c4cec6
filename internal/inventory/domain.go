package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilot-erp/stockpilot-erp/internal/catalog/products"
)

// StockLevel buckets a quantity for dashboards and the low-stock scan.
type StockLevel string

const (
	StockLow    StockLevel = "Low"
	StockMedium StockLevel = "Medium"
	StockHigh   StockLevel = "High"
)

const (
	lowThreshold  = 37
	highThreshold = 72
)

// Classify maps a quantity to its stock level. Quantities below 37 are
// Low, 37 through 72 inclusive are Medium, above 72 are High. Negative
// quantities are Low like any other small number.
func Classify(quantity int) StockLevel {
	switch {
	case quantity < lowThreshold:
		return StockLow
	case quantity <= highThreshold:
		return StockMedium
	default:
		return StockHigh
	}
}

// Record tracks on-hand quantity for one product. One record per product,
// created lazily on the first stock movement. Quantity may go negative:
// orders are allowed to oversell and the ledger records the deficit.
type Record struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (r Record) Level() StockLevel {
	return Classify(r.Quantity)
}

// RecordWithProduct joins a ledger record with its catalog entry. Product
// is nil when the catalog row no longer exists; the record still counts.
type RecordWithProduct struct {
	Record
	Level   StockLevel        `json:"level"`
	Product *products.Product `json:"product"`
}

// Summary aggregates the ledger for the dashboard.
type Summary struct {
	TotalRecords  int `json:"totalRecords"`
	TotalQuantity int `json:"totalQuantity"`
	LowCount      int `json:"lowCount"`
	MediumCount   int `json:"mediumCount"`
	HighCount     int `json:"highCount"`
}
