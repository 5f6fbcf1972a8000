package handler

import (
	"io"
	"net/http"

	"touchbase/internal/dragdrop"
	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

// DndHandler is the single drop endpoint behind the dashboard's drag and
// drop. It decodes the typed payload once and dispatches on its kind.
type DndHandler struct {
	contactService   service.ContactService
	draftService     service.DraftService
	dashboardService service.DashboardService
	authHandler      *AuthHandler
	logger           echo.Logger
}

func NewDndHandler(
	contactService service.ContactService,
	draftService service.DraftService,
	dashboardService service.DashboardService,
	authHandler *AuthHandler,
	logger echo.Logger,
) *DndHandler {
	return &DndHandler{
		contactService:   contactService,
		draftService:     draftService,
		dashboardService: dashboardService,
		authHandler:      authHandler,
		logger:           logger,
	}
}

// HandleDrop applies one drag and drop gesture.
func (h *DndHandler) HandleDrop(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "Failed to read request body")
	}
	payload, err := dragdrop.Decode(body)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	switch payload.Kind {
	case dragdrop.KindContactMove:
		contact, err := h.contactService.AssignCategory(ctx, user.ID, payload.ContactMove.ContactID, payload.ContactMove.CategoryID)
		if err != nil {
			return writeError(c, h.logger, err, "Failed to move contact")
		}
		return c.JSON(http.StatusOK, contact)

	case dragdrop.KindMailReorder:
		order, err := h.dashboardService.MoveMail(ctx, user.ID, payload.MailReorder.ContactID, payload.MailReorder.MailID, payload.MailReorder.ToIndex)
		if err != nil {
			return writeError(c, h.logger, err, "Failed to reorder mail")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"order": order})

	case dragdrop.KindDraftPlace:
		draft, err := h.draftService.Place(ctx, user.ID, payload.DraftPlace.DraftID, payload.DraftPlace.ContactID, payload.DraftPlace.ToIndex)
		if err != nil {
			return writeError(c, h.logger, err, "Failed to place draft")
		}
		return c.JSON(http.StatusOK, draft)
	}

	return badRequest(c, "Unknown drag payload kind")
}
