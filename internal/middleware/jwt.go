package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware

	"seatpick/internal/utils"
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects the token's session ID into the request context under
// "session_id". The secret must match the one used when the session was
// created. Handlers additionally check that the path's :id matches the
// token's session so one patron cannot drive another's session.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			sid, err := utils.ParseSessionID(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("session_id", sid)
			return next(c)
		}
	}
}
