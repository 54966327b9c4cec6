package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
)

type Handler struct {
	svc      *Service
	sessions *shared.SessionManager
	audit    *shared.AuditLogger
	logger   *slog.Logger
}

func NewHandler(svc *Service, sessions *shared.SessionManager, audit *shared.AuditLogger, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, audit: audit, logger: logger}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}

	user, err := h.svc.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Invalid credentials", "email or password is incorrect")
			return
		}
		h.logger.Error("login", "error", err)
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Session unavailable", "session middleware is not active")
		return
	}
	sess.SetUser(user.ID.String())
	sess.Set("role", user.Role)

	if h.audit != nil {
		if err := h.audit.Record(r.Context(), shared.AuditLog{
			ActorID:  user.ID.String(),
			Action:   "auth.login",
			Entity:   "user",
			EntityID: user.Email,
		}); err != nil {
			h.logger.Warn("audit login", "user", user.Email, "error", err)
		}
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"data": user})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil && sess.User() != "" {
		if h.audit != nil {
			if err := h.audit.Record(r.Context(), shared.AuditLog{
				ActorID:  sess.User(),
				Action:   "auth.logout",
				Entity:   "user",
				EntityID: sess.User(),
			}); err != nil {
				h.logger.Warn("audit logout", "user", sess.User(), "error", err)
			}
		}
		h.sessions.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "logged out"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"userId": sess.User(),
		"role":   sess.Get("role"),
	})
}
