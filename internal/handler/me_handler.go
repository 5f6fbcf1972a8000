package handler

import (
	"net/http"

	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

type MeHandler struct {
	authService service.AuthService
	authHandler *AuthHandler
	logger      echo.Logger
}

func NewMeHandler(authService service.AuthService, authHandler *AuthHandler, logger echo.Logger) *MeHandler {
	return &MeHandler{
		authService: authService,
		authHandler: authHandler,
		logger:      logger,
	}
}

// GetMe returns the signed-in user's profile and settings.
func (h *MeHandler) GetMe(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe patches the profile; only keys present in the body are applied.
func (h *MeHandler) UpdateMe(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Name               *string `json:"name"`
		StaleThresholdDays *int    `json:"staleThresholdDays"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.authService.UpdateSettings(c.Request().Context(), user.ID, req.Name, req.StaleThresholdDays)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update settings")
	}
	return c.JSON(http.StatusOK, updated)
}
