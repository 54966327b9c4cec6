package report

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot-erp/stockpilot-erp/internal/catalog/products"
	"github.com/stockpilot-erp/stockpilot-erp/internal/inventory"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/vendors"
	"github.com/stockpilot-erp/stockpilot-erp/internal/orders"
)

type stubInventory struct {
	records []inventory.RecordWithProduct
}

func (s *stubInventory) ListWithProducts(context.Context) ([]inventory.RecordWithProduct, error) {
	return s.records, nil
}

type stubOrders struct {
	list []orders.OrderWithContext
}

func (s *stubOrders) ListWithContext(context.Context) ([]orders.OrderWithContext, error) {
	return s.list, nil
}

// fakeGotenberg echoes the submitted HTML back so tests can assert on
// the rendered table without a real converter.
func fakeGotenberg(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		html, err := io.ReadAll(file)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(html)
	}))
}

func TestTableHTMLEscapesCells(t *testing.T) {
	table := Table{
		Title:   "Report <script>",
		Headers: []string{"Name"},
		Rows:    [][]string{{"<b>bold</b>"}},
	}
	out := table.HTML()
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "1,234,567", FormatNumber(1234567))
	require.Equal(t, "-42", FormatNumber(-42))
	require.Equal(t, "1,250.50", FormatMoney(1250.5))
}

func TestExportInventoryPDF(t *testing.T) {
	server := fakeGotenberg(t)
	defer server.Close()

	inv := &stubInventory{records: []inventory.RecordWithProduct{
		{
			Record: inventory.Record{ProductID: uuid.New(), Quantity: 1200, Location: "warehouse-a", LastUpdated: time.Now()},
			Level:  inventory.StockHigh,
			Product: &products.Product{
				Code: "PRD-001",
				Name: "Mineral Water 600ml",
			},
		},
		{
			Record: inventory.Record{ProductID: uuid.New(), Quantity: -4, LastUpdated: time.Now()},
			Level:  inventory.StockLow,
		},
	}}

	handler := NewHandler(NewClient(server.URL), inv, &stubOrders{}, slog.Default())
	r := chi.NewRouter()
	handler.MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/inventory.pdf", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	require.Contains(t, body, "PRD-001")
	require.Contains(t, body, "1,200")
	require.Contains(t, body, "(deleted product)")
}

func TestExportOrdersPDF(t *testing.T) {
	server := fakeGotenberg(t)
	defer server.Close()

	ord := &stubOrders{list: []orders.OrderWithContext{
		{
			Order: orders.Order{
				OrderNumber:   "ORD-1001",
				Total:         1250.5,
				Status:        orders.StatusPending,
				PaymentStatus: orders.PaymentUnpaid,
				CreatedAt:     time.Now(),
			},
			Vendor: &vendors.Vendor{Name: "Acme Distribution"},
		},
	}}

	handler := NewHandler(NewClient(server.URL), &stubInventory{}, ord, slog.Default())
	r := chi.NewRouter()
	handler.MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/orders.pdf", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "ORD-1001")
	require.Contains(t, body, "Acme Distribution")
	require.Contains(t, body, "1,250.50")
	require.Contains(t, body, "(deleted user)")
}

func TestPingUnavailable(t *testing.T) {
	handler := NewHandler(NewClient("http://127.0.0.1:1"), &stubInventory{}, &stubOrders{}, slog.Default())
	r := chi.NewRouter()
	handler.MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
