package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/domain"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
	identityByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	return s.authenticateFn(ctx, creds)
}

func (s *stubAuthService) IdentityByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	return s.identityByIDFn(ctx, id)
}

type stubSessionService struct {
	token      string
	loggedOut  []string
	resolveErr error
}

func (s *stubSessionService) Login(ctx context.Context, identity *domain.Identity) (string, error) {
	return s.token, nil
}

func (s *stubSessionService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	return nil, s.resolveErr
}

func (s *stubSessionService) Logout(ctx context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := rec.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestSessionHandler_Login_Success(t *testing.T) {
	e := echo.New()
	ident := &domain.Identity{
		ID:        uuid.New(),
		Email:     "coach@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
			if creds.Email != "coach@example.com" || creds.Password != "secret" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			return ident, nil
		},
	}
	sessions := &stubSessionService{token: "tok-abc"}
	handler := NewSessionHandler(auth, sessions, 24*time.Hour, false)

	body := strings.NewReader(`{"email":"coach@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "coach@example.com" || resp["first_name"] != "Ada" {
		t.Fatalf("unexpected profile payload: %+v", resp)
	}
	if _, ok := resp["password_hash"]; ok {
		t.Fatalf("password hash leaked in response")
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "tok-abc" {
		t.Fatalf("cookie carries %q, want session token", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be http-only")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be same-site strict")
	}
	if cookie.Path != "/" {
		t.Fatalf("cookie path is %q, want /", cookie.Path)
	}
	if want := int((24 * time.Hour).Seconds()) - 1; cookie.MaxAge != want {
		t.Fatalf("cookie max-age is %d, want %d", cookie.MaxAge, want)
	}
}

func TestSessionHandler_Login_FormWithRedirect(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
			return &domain.Identity{ID: uuid.New(), Email: creds.Email}, nil
		},
	}
	sessions := &stubSessionService{token: "tok-abc"}
	handler := NewSessionHandler(auth, sessions, 24*time.Hour, false)

	form := url.Values{}
	form.Set("email", "coach@example.com")
	form.Set("password", "secret")
	form.Set("next", "/dashboard")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("redirect location is %q, want /dashboard", loc)
	}
	if sessionCookie(rec) == nil {
		t.Fatalf("session cookie not set on redirect login")
	}
}

func TestSessionHandler_Login_BadCredentials(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
			return nil, domain.ErrUnauthenticated
		},
	}
	handler := NewSessionHandler(auth, &stubSessionService{}, 24*time.Hour, false)

	body := strings.NewReader(`{"email":"coach@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected http error, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie must be issued on failed login")
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	e := echo.New()
	sessions := &stubSessionService{}
	handler := NewSessionHandler(&stubAuthService{}, sessions, 24*time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tok-abc"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sessions.loggedOut) != 1 || sessions.loggedOut[0] != "tok-abc" {
		t.Fatalf("session not invalidated server-side: %v", sessions.loggedOut)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("clearing cookie not set")
	}
	if cookie.MaxAge != -1 {
		t.Fatalf("clearing cookie max-age is %d, want -1", cookie.MaxAge)
	}
}

func TestSessionHandler_Logout_NoCookie(t *testing.T) {
	e := echo.New()
	handler := NewSessionHandler(&stubAuthService{}, &stubSessionService{}, 24*time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Logout(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionHandler_Protected(t *testing.T) {
	e := echo.New()
	handler := NewSessionHandler(&stubAuthService{}, &stubSessionService{}, 24*time.Hour, false)
	ident := &domain.Identity{ID: uuid.New(), Email: "coach@example.com"}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", ident)

	if err := handler.Protected(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "coach@example.com" {
		t.Fatalf("unexpected profile payload: %+v", resp)
	}
}
