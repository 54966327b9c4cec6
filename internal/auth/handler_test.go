package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot-erp/stockpilot-erp/internal/shared"
)

// commitWriter mirrors the production session middleware in internal/app:
// the session must be committed before the first header write so the
// Set-Cookie header is included in the response.
type commitWriter struct {
	http.ResponseWriter
	sess          *shared.Session
	manager       *shared.SessionManager
	ctx           context.Context
	req           *http.Request
	headerWritten bool
}

func (w *commitWriter) WriteHeader(statusCode int) {
	if !w.headerWritten {
		w.headerWritten = true
		_ = w.manager.Commit(w.ctx, w.ResponseWriter, w.req, w.sess)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *commitWriter) Write(data []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}

func newTestRouter(t *testing.T) (*chi.Mux, *shared.SessionManager) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "stockpilot_session", "test-secret", time.Hour, false)
	svc := NewService(seededFinder(t, "ana@example.com", "s3cret-pass"))
	handler := NewHandler(svc, sessions, nil, slog.Default())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			require.NoError(t, err)
			ctx := shared.ContextWithSession(req.Context(), sess)
			wrapped := &commitWriter{
				ResponseWriter: w,
				sess:           sess,
				manager:        sessions,
				ctx:            ctx,
				req:            req.WithContext(ctx),
			}
			next.ServeHTTP(wrapped, req.WithContext(ctx))
		})
	})
	handler.MountRoutes(r)
	return r, sessions
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@example.com","password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "stockpilot_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.NotEmpty(t, sessionCookie.Value)
	require.True(t, sessionCookie.HttpOnly)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeAfterLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	login := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@example.com","password":"s3cret-pass"}`))
	login.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, login)
	require.Equal(t, http.StatusOK, loginRec.Code)

	me := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range loginRec.Result().Cookies() {
		me.AddCookie(c)
	}
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, me)

	require.Equal(t, http.StatusOK, meRec.Code)
	require.Contains(t, meRec.Body.String(), "userId")
}

func TestMeWithoutSession(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	router, _ := newTestRouter(t)

	login := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@example.com","password":"s3cret-pass"}`))
	login.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, login)

	logout := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range loginRec.Result().Cookies() {
		logout.AddCookie(c)
	}
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logout)
	require.Equal(t, http.StatusOK, logoutRec.Code)

	me := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range loginRec.Result().Cookies() {
		me.AddCookie(c)
	}
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, me)
	require.Equal(t, http.StatusUnauthorized, meRec.Code)
}
