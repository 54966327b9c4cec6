package orders

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot-erp/stockpilot-erp/internal/observability"
	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type Handler struct {
	svc     *Service
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewHandler(svc *Service, metrics *observability.Metrics, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, metrics: metrics, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.place)
	r.Get("/{orderNumber}", h.show)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListWithContext(r.Context())
	if err != nil {
		h.logger.Error("list orders", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": items, "total": len(items)})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": detail})
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}
	detail, err := h.svc.PlaceOrder(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.OrderPlaced()
	}
	h.logger.Info("order placed", "order", detail.OrderNumber, "items", len(detail.Items), "total", detail.Total)
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": detail})
}
