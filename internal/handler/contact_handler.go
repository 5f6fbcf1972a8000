package handler

import (
	"io"
	"net/http"

	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	contactService service.ContactService
	authHandler    *AuthHandler
	logger         echo.Logger
}

func NewContactHandler(contactService service.ContactService, authHandler *AuthHandler, logger echo.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		authHandler:    authHandler,
		logger:         logger,
	}
}

// GetContacts lists the caller's contacts ordered by (position, name).
func (h *ContactHandler) GetContacts(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	contacts, err := h.contactService.List(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get contacts")
	}
	return c.JSON(http.StatusOK, contacts)
}

// CreateContact creates a contact, optionally under a category.
func (h *ContactHandler) CreateContact(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		CategoryID *string `json:"categoryId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return badRequest(c, "Name and email are required")
	}

	contact, err := h.contactService.Create(c.Request().Context(), user.ID, req.Name, req.Email, req.CategoryID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create contact")
	}
	return c.JSON(http.StatusCreated, contact)
}

// UpdateContact applies a partial update; an empty categoryId detaches the
// contact and an empty lastSentAt clears the timestamp.
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Name       *string `json:"name"`
		Email      *string `json:"email"`
		CategoryID *string `json:"categoryId"`
		Position   *int    `json:"position"`
		LastSentAt *string `json:"lastSentAt"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contact, err := h.contactService.Update(c.Request().Context(), user.ID, c.Param("id"), service.ContactPatch{
		Name:       req.Name,
		Email:      req.Email,
		CategoryID: req.CategoryID,
		Position:   req.Position,
		LastSentAt: req.LastSentAt,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update contact")
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteContact removes a contact along with its sent-mail log; its drafts
// return to the unplaced pool.
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	if err := h.contactService.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return writeError(c, h.logger, err, "Failed to delete contact")
	}
	return okTrue(c)
}

// ReorderContacts rewrites positions for the posted id list atomically.
func (h *ContactHandler) ReorderContacts(c echo.Context) error {
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

	if err := h.contactService.Reorder(c.Request().Context(), user.ID, req.IDs); err != nil {
		return writeError(c, h.logger, err, "Failed to reorder contacts")
	}
	return okTrue(c)
}

// BulkCreateContacts creates or updates one contact per posted email.
// Invalid rows are reported without failing the batch; a batch with no
// usable rows is a 400.
func (h *ContactHandler) BulkCreateContacts(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Contacts []service.BulkContact `json:"contacts"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Contacts) == 0 {
		return badRequest(c, "contacts is required")
	}

	contacts, rowErrors, err := h.contactService.BulkUpsert(c.Request().Context(), user.ID, req.Contacts)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to import contacts")
	}
	if len(contacts) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  "No valid rows",
			"errors": rowErrors,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"contacts": contacts,
		"errors":   rowErrors,
	})
}

// ImportContactsCSV parses a raw CSV body (delimiter sniffed) and upserts
// the rows like BulkCreateContacts.
func (h *ContactHandler) ImportContactsCSV(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "Failed to read request body")
	}
	if len(body) == 0 {
		return badRequest(c, "CSV body is required")
	}

	contacts, rowErrors, err := h.contactService.ImportCSV(c.Request().Context(), user.ID, string(body))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to import contacts")
	}
	if len(contacts) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  "No valid rows",
			"errors": rowErrors,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"contacts": contacts,
		"errors":   rowErrors,
	})
}

// ExportContactsCSV streams the caller's contacts as a CSV download.
func (h *ContactHandler) ExportContactsCSV(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	csv, err := h.contactService.ExportCSV(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to export contacts")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="contacts.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
