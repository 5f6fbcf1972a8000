package middleware

import (
	"touchbase/internal/handler"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware rejects requests without a resolvable session. A missing
// cookie is a 401; a session pointing at a deleted user row is a 404, so
// the error mapping is shared with the handlers.
func AuthMiddleware(authHandler *handler.AuthHandler, logger echo.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := authHandler.GetCurrentUser(c); err != nil {
				return handler.WriteError(c, logger, err, "Failed to load user")
			}
			return next(c)
		}
	}
}
