package handler

import (
	"net/http"

	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

type DraftHandler struct {
	draftService service.DraftService
	authHandler  *AuthHandler
	logger       echo.Logger
}

func NewDraftHandler(draftService service.DraftService, authHandler *AuthHandler, logger echo.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		authHandler:  authHandler,
		logger:       logger,
	}
}

// GetDrafts lists the caller's manual drafts, unplaced pool first.
func (h *DraftHandler) GetDrafts(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	drafts, err := h.draftService.List(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get drafts")
	}
	return c.JSON(http.StatusOK, drafts)
}

// CreateDraft creates a manual draft in the unplaced pool.
func (h *DraftHandler) CreateDraft(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	draft, err := h.draftService.Create(c.Request().Context(), user.ID, req.Note)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create draft")
	}
	return c.JSON(http.StatusCreated, draft)
}

// UpdateDraft applies a partial update; an empty contactId returns the draft
// to the unplaced pool.
func (h *DraftHandler) UpdateDraft(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Note      *string `json:"note"`
		ContactID *string `json:"contactId"`
		Position  *int    `json:"position"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	draft, err := h.draftService.Update(c.Request().Context(), user.ID, c.Param("id"), service.DraftPatch{
		Note:      req.Note,
		ContactID: req.ContactID,
		Position:  req.Position,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// DeleteDraft removes a manual draft.
func (h *DraftHandler) DeleteDraft(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	if err := h.draftService.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return writeError(c, h.logger, err, "Failed to delete draft")
	}
	return okTrue(c)
}

// ReorderDrafts rewrites positions for the posted id list atomically.
func (h *DraftHandler) ReorderDrafts(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return badRequest(c, "ids is required")
	}

	if err := h.draftService.Reorder(c.Request().Context(), user.ID, req.IDs); err != nil {
		return writeError(c, h.logger, err, "Failed to reorder drafts")
	}
	return okTrue(c)
}
