package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/refactor-group/coaching-platform/internal/infrastructure/config"
)

// The router is built once; echoprometheus registers its collectors in the
// default prometheus registry and a second registration would collide.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		APIVersion:    "0.0.1",
		VersionHeader: "x-version",
		Session: config.SessionConfig{
			Window:       time.Hour,
			StoreTimeout: time.Second,
		},
	}

	e, _ := NewRouter(cfg, nil, rdb, zerolog.Nop())
	return e
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %q", rec.Body.String())
	}
	return body.Error
}

func TestRouter_VersionGateAndAuth(t *testing.T) {
	router := newTestRouter(t)

	// Login is reachable without a version header. A malformed body proves the
	// request made it past the gate and into the handler.
	t.Run("login skips version gate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "invalid payload" {
			t.Fatalf("expected the handler's bind error, got %q", msg)
		}
	})

	t.Run("protected requires version header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "version header missing" {
			t.Fatalf("expected the gate's error, got %q", msg)
		}
	})

	t.Run("protected rejects mismatched version", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("x-version", "9.9.9")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "unsupported api version" {
			t.Fatalf("expected the gate's error, got %q", msg)
		}
	})

	// A dead cookie replayed against logout must not read as success.
	t.Run("logout requires a live session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.Header.Set("x-version", "0.0.1")
		req.AddCookie(&http.Cookie{Name: "id", Value: "expired-token"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("logout without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.Header.Set("x-version", "0.0.1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("health is ungated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
