package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runVersionGate(t *testing.T, header, value string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Version("x-version", "0.0.1")
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestVersion_ExactMatchPasses(t *testing.T) {
	rec, called := runVersionGate(t, "x-version", "0.0.1")
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVersion_MissingHeaderIsBadRequest(t *testing.T) {
	rec, called := runVersionGate(t, "x-version", "")
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVersion_MismatchIsBadRequest(t *testing.T) {
	rec, called := runVersionGate(t, "x-version", "0.0.2")
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVersion_MatchIsCaseSensitive(t *testing.T) {
	rec, called := runVersionGate(t, "x-version", "0.0.1-RC")
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
