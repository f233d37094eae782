package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DefaultVersionHeader is the header clients use to declare the API version
// they were built against.
const DefaultVersionHeader = "x-version"

// Version rejects any request whose declared API version does not exactly
// equal the accepted one. The check is stateless and runs before
// authentication, so version mismatches are diagnosable without credentials.
func Version(header, accepted string) echo.MiddlewareFunc {
	if header == "" {
		header = DefaultVersionHeader
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			declared := c.Request().Header.Get(header)
			if declared == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "version header missing")
			}
			// exact match, case sensitive; no range negotiation
			if declared != accepted {
				return echo.NewHTTPError(http.StatusBadRequest, "unsupported api version")
			}
			return next(c)
		}
	}
}
