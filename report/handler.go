package report

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot-erp/stockpilot-erp/internal/inventory"
	"github.com/stockpilot-erp/stockpilot-erp/internal/orders"
)

// InventorySource and OrderSource are the read slices the exports need.
type InventorySource interface {
	ListWithProducts(ctx context.Context) ([]inventory.RecordWithProduct, error)
}

type OrderSource interface {
	ListWithContext(ctx context.Context) ([]orders.OrderWithContext, error)
}

type Handler struct {
	client       *Client
	inventorySvc InventorySource
	orderSvc     OrderSource
	logger       *slog.Logger
}

func NewHandler(client *Client, inventorySvc InventorySource, orderSvc OrderSource, logger *slog.Logger) *Handler {
	return &Handler{client: client, inventorySvc: inventorySvc, orderSvc: orderSvc, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ping", h.ping)
	r.Get("/inventory.pdf", h.exportInventory)
	r.Get("/orders.pdf", h.exportOrders)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Ping(r.Context()); err != nil {
		h.logger.Warn("gotenberg ping failed", "error", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) exportInventory(w http.ResponseWriter, r *http.Request) {
	records, err := h.inventorySvc.ListWithProducts(r.Context())
	if err != nil {
		h.logger.Error("load inventory for export", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	table := Table{
		Title:   "Inventory Report",
		Headers: []string{"Product Code", "Product Name", "Quantity", "Level", "Location", "Last Updated"},
	}
	for _, rec := range records {
		code, name := "-", "(deleted product)"
		if rec.Product != nil {
			code, name = rec.Product.Code, rec.Product.Name
		}
		table.Rows = append(table.Rows, []string{
			code,
			name,
			FormatNumber(rec.Quantity),
			string(rec.Level),
			rec.Location,
			rec.LastUpdated.Format("2006-01-02 15:04"),
		})
	}

	h.render(w, r, "inventory.pdf", table)
}

func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orderSvc.ListWithContext(r.Context())
	if err != nil {
		h.logger.Error("load orders for export", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	table := Table{
		Title:   "Orders Report",
		Headers: []string{"Order Number", "Vendor", "Placed By", "Status", "Payment", "Total", "Created At"},
	}
	for _, o := range list {
		vendorName, userName := "(deleted vendor)", "(deleted user)"
		if o.Vendor != nil {
			vendorName = o.Vendor.Name
		}
		if o.CreatedByUser != nil {
			userName = o.CreatedByUser.Name
		}
		table.Rows = append(table.Rows, []string{
			o.OrderNumber,
			vendorName,
			userName,
			o.Status,
			o.PaymentStatus,
			FormatMoney(o.Total),
			o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	h.render(w, r, "orders.pdf", table)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, filename string, table Table) {
	pdf, err := h.client.RenderHTML(r.Context(), table.HTML())
	if err != nil {
		h.logger.Error("render pdf", "file", filename, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
