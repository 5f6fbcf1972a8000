package handler

import (
	"net/http"

	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

type SentMailHandler struct {
	sentMailService service.SentMailService
	authHandler     *AuthHandler
	logger          echo.Logger
}

func NewSentMailHandler(sentMailService service.SentMailService, authHandler *AuthHandler, logger echo.Logger) *SentMailHandler {
	return &SentMailHandler{
		sentMailService: sentMailService,
		authHandler:     authHandler,
		logger:          logger,
	}
}

// SyncSentMail pulls the user's recently sent messages and records the ones
// addressed to known contacts.
func (h *SentMailHandler) SyncSentMail(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	synced, err := h.sentMailService.Sync(c.Request().Context(), user)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to sync sent mail")
	}
	return c.JSON(http.StatusOK, map[string]int{"synced": synced})
}
