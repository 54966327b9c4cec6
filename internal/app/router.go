package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpilot-erp/stockpilot-erp/internal/auth"
	"github.com/stockpilot-erp/stockpilot-erp/internal/catalog/products"
	"github.com/stockpilot-erp/stockpilot-erp/internal/inventory"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/agents"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/customers"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/suppliers"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/vendors"
	"github.com/stockpilot-erp/stockpilot-erp/internal/observability"
	"github.com/stockpilot-erp/stockpilot-erp/internal/orders"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/users"
	"github.com/stockpilot-erp/stockpilot-erp/jobs"
	"github.com/stockpilot-erp/stockpilot-erp/report"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	Pool           *pgxpool.Pool
	Metrics        *observability.Metrics

	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	VendorsHandler   *vendors.Handler
	CustomersHandler *customers.Handler
	AgentsHandler    *agents.Handler
	SuppliersHandler *suppliers.Handler
	ProductsHandler  *products.Handler
	InventoryHandler *inventory.Handler
	OrdersHandler    *orders.Handler
	ReportHandler    *report.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with StockPilot defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", func(sub chi.Router) {
		params.AuthHandler.MountRoutes(sub)
	})

	r.Group(func(protected chi.Router) {
		protected.Use(RequireAuth)

		protected.Route("/users", func(sub chi.Router) {
			params.UsersHandler.MountRoutes(sub)
		})
		protected.Route("/masterdata/vendors", func(sub chi.Router) {
			params.VendorsHandler.MountRoutes(sub)
		})
		protected.Route("/masterdata/customers", func(sub chi.Router) {
			params.CustomersHandler.MountRoutes(sub)
		})
		protected.Route("/masterdata/agents", func(sub chi.Router) {
			params.AgentsHandler.MountRoutes(sub)
		})
		protected.Route("/masterdata/suppliers", func(sub chi.Router) {
			params.SuppliersHandler.MountRoutes(sub)
		})
		protected.Route("/catalog/products", func(sub chi.Router) {
			params.ProductsHandler.MountRoutes(sub)
		})
		protected.Route("/inventory", func(sub chi.Router) {
			params.InventoryHandler.MountRoutes(sub)
		})
		protected.Route("/orders", func(sub chi.Router) {
			params.OrdersHandler.MountRoutes(sub)
		})
		if params.ReportHandler != nil {
			protected.Route("/report", func(sub chi.Router) {
				params.ReportHandler.MountRoutes(sub)
			})
		}
		if params.JobsHandler != nil {
			protected.Route("/jobs", func(sub chi.Router) {
				params.JobsHandler.MountRoutes(sub)
			})
		}
	})

	return r
}
