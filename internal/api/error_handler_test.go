package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_Unauthenticated(t *testing.T) {
	rec, body := renderError(t, domain.ErrUnauthenticated)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "unauthorized" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

// Ownership refusals and authentication failures must be indistinguishable
// to the client.
func TestErrorHandler_UnauthorizedMatchesUnauthenticated(t *testing.T) {
	recA, bodyA := renderError(t, domain.ErrUnauthenticated)
	recB, bodyB := renderError(t, domain.ErrUnauthorized)
	if recA.Code != recB.Code || bodyA["error"] != bodyB["error"] {
		t.Fatalf("responses diverge: %d/%q vs %d/%q",
			recA.Code, bodyA["error"], recB.Code, bodyB["error"])
	}
}

func TestErrorHandler_NotFoundSentinels(t *testing.T) {
	sentinels := []error{
		domain.ErrOrganizationNotFound,
		domain.ErrRelationshipNotFound,
		domain.ErrCoachingSessionNotFound,
		domain.ErrGoalNotFound,
		domain.ErrNoteNotFound,
		domain.ErrAgreementNotFound,
		domain.ErrActionNotFound,
	}
	for _, sentinel := range sentinels {
		rec, body := renderError(t, sentinel)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%v: expected 404, got %d", sentinel, rec.Code)
		}
		if body["error"] != "not found" {
			t.Fatalf("%v: unexpected message %q", sentinel, body["error"])
		}
	}
}

func TestErrorHandler_UnknownErrorIsOpaque500(t *testing.T) {
	rec, body := renderError(t, errors.New("pq: connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("real cause leaked: %q", body["error"])
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "version header missing"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "version header missing" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}
