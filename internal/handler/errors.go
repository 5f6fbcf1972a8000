package handler

import (
	"errors"
	"net/http"

	"touchbase/internal/repository"
	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

// ErrNoSession distinguishes "no cookie at all" (401) from "session points
// at a user row that no longer exists" (404).
var ErrNoSession = errors.New("no authenticated session")

// writeError translates service and repository failures into the response
// taxonomy: 401 no session, 404 missing or foreign row, 400 bad input,
// 409 unique conflict, 500 anything else (logged, generic message).
func writeError(c echo.Context, logger echo.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNoSession):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": "Already exists"})
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		logger.Error(fallback+": ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}

// WriteError exposes the mapping to middleware outside the package.
func WriteError(c echo.Context, logger echo.Logger, err error, fallback string) error {
	return writeError(c, logger, err, fallback)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func okTrue(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
