package handler

import (
	"net/http"

	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	authHandler      *AuthHandler
	logger           echo.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, authHandler *AuthHandler, logger echo.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		authHandler:      authHandler,
		logger:           logger,
	}
}

// GetDashboard returns categories, contacts with staleness and nested mail
// and drafts, and the unplaced draft pool in one payload.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	dashboard, err := h.dashboardService.Build(c.Request().Context(), user)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to build dashboard")
	}
	return c.JSON(http.StatusOK, dashboard)
}
