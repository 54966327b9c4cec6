package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stockpilot-erp/stockpilot-erp/internal/app"
	"github.com/stockpilot-erp/stockpilot-erp/internal/auth"
	"github.com/stockpilot-erp/stockpilot-erp/internal/catalog/products"
	"github.com/stockpilot-erp/stockpilot-erp/internal/inventory"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/agents"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/customers"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/suppliers"
	"github.com/stockpilot-erp/stockpilot-erp/internal/masterdata/vendors"
	"github.com/stockpilot-erp/stockpilot-erp/internal/observability"
	"github.com/stockpilot-erp/stockpilot-erp/internal/orders"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/cache"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/db"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
	"github.com/stockpilot-erp/stockpilot-erp/internal/users"
	"github.com/stockpilot-erp/stockpilot-erp/jobs"
	"github.com/stockpilot-erp/stockpilot-erp/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "stockpilot_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	auditLogger := shared.NewAuditLogger(pool)
	metrics := observability.NewMetrics()

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(usersService, logger)

	authService := auth.NewService(usersRepo)
	authHandler := auth.NewHandler(authService, sessionManager, auditLogger, logger)

	vendorsService := vendors.NewService(vendors.NewRepository(pool))
	vendorsHandler := vendors.NewHandler(logger, vendorsService)

	customersService := customers.NewService(customers.NewRepository(pool))
	customersHandler := customers.NewHandler(logger, customersService)

	agentsService := agents.NewService(agents.NewRepository(pool))
	agentsHandler := agents.NewHandler(agentsService, logger)

	suppliersService := suppliers.NewService(suppliers.NewRepository(pool))
	suppliersHandler := suppliers.NewHandler(suppliersService, logger)

	productsService := products.NewService(products.NewRepository(pool))
	productsHandler := products.NewHandler(productsService, logger)

	inventoryService := inventory.NewService(inventory.NewRepository(pool))
	inventoryHandler := inventory.NewHandler(inventoryService, logger)

	ordersService := orders.NewService(orders.NewStore(pool), auditLogger, logger)
	ordersHandler := orders.NewHandler(ordersService, metrics, logger)

	pdfClient := report.NewClient(cfg.GotenbergURL)
	reportHandler := report.NewHandler(pdfClient, inventoryService, ordersService, logger)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("asynq inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		Pool:           pool,
		Metrics:        metrics,

		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		VendorsHandler:   vendorsHandler,
		CustomersHandler: customersHandler,
		AgentsHandler:    agentsHandler,
		SuppliersHandler: suppliersHandler,
		ProductsHandler:  productsHandler,
		InventoryHandler: inventoryHandler,
		OrdersHandler:    ordersHandler,
		ReportHandler:    reportHandler,
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
