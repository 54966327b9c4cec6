package inventory

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/product/{productID}", h.showByProduct)
	r.Post("/adjust", h.adjust)
}

type adjustForm struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
	Location  string `json:"location"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListWithProducts(r.Context())
	if err != nil {
		h.logger.Error("list inventory", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": items, "total": len(items)})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summarize(r.Context())
	if err != nil {
		h.logger.Error("inventory summary", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": s})
}

func (h *Handler) showByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid identifier", "product id must be a valid UUID")
		return
	}
	rec, err := h.svc.GetByProduct(r.Context(), productID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": rec, "level": rec.Level()})
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var form adjustForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}
	productID, err := uuid.Parse(form.ProductID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", "productId must be a valid UUID")
		return
	}
	rec, err := h.svc.AdjustStock(r.Context(), productID, form.Delta, form.Location)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": rec, "level": rec.Level()})
}
