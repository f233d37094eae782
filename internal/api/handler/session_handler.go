package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/api/metrics"
	"github.com/refactor-group/coaching-platform/internal/api/middleware"
	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// SessionHandler handles login, logout, and the authenticated probe.
type SessionHandler struct {
	auth     ports.AuthService
	sessions ports.SessionService
	// window sizes the cookie max-age; the server-side record is
	// authoritative regardless.
	window time.Duration
	secure bool
}

func NewSessionHandler(auth ports.AuthService, sessions ports.SessionService, window time.Duration, secure bool) *SessionHandler {
	return &SessionHandler{auth: auth, sessions: sessions, window: window, secure: secure}
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	// Next is an optional post-login redirect target.
	Next string `form:"next" json:"next,omitempty"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func profileOf(ident *domain.Identity) profileResponse {
	return profileResponse{
		ID:        ident.ID.String(),
		Email:     ident.Email,
		FirstName: ident.FirstName,
		LastName:  ident.LastName,
	}
}

// Login verifies credentials and issues a session cookie.
//
// @Summary      Log in
// @Tags         sessions
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email     formData  string  true   "Login email"
// @Param        password  formData  string  true   "Password"
// @Param        next      formData  string  false  "Post-login redirect target"
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	creds := domain.Credentials{Email: req.Email, Password: req.Password, Next: req.Next}
	ident, err := h.auth.Authenticate(c.Request().Context(), creds)
	if errors.Is(err, domain.ErrUnauthenticated) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	token, err := h.sessions.Login(c.Request().Context(), ident)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setSessionCookie(c, token)

	if creds.Next != "" {
		return c.Redirect(http.StatusSeeOther, creds.Next)
	}
	return c.JSON(http.StatusOK, profileOf(ident))
}

// Logout destroys the caller's session server-side.
//
// @Summary      Log out
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /logout [get]
func (h *SessionHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.sessions.Logout(c.Request().Context(), cookie.Value); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Protected returns the authenticated caller's public profile. It exists as a
// diagnostic probe for session handling.
//
// @Summary      Current identity probe
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /protected [get]
func (h *SessionHandler) Protected(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileOf(ident))
}

func (h *SessionHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.window.Seconds()) - 1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *SessionHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
