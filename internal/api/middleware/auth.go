package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/refactor-group/coaching-platform/internal/core/domain"
	"github.com/refactor-group/coaching-platform/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "id"

// identityKey is the echo context key the authenticated identity is stored
// under.
const identityKey = "identity"

// Auth resolves the request's session cookie into an authenticated identity
// and injects it into the context. A missing cookie, an unknown or expired
// session, and a session bound to a deleted identity all produce the same
// 401 with no hint of which case applied. Infrastructure failures surface as
// 500, never as 401.
func Auth(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			identity, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if errors.Is(err, domain.ErrUnauthenticated) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if err != nil {
				// store or database failure; the error handler logs it and
				// answers 500
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity injected by Auth. It fails with 401
// when the middleware did not run, so a miswired route cannot silently serve
// unauthenticated traffic.
func CurrentIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return identity, nil
}
