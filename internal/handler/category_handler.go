package handler

import (
	"net/http"

	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	authHandler     *AuthHandler
	logger          echo.Logger
}

func NewCategoryHandler(categoryService service.CategoryService, authHandler *AuthHandler, logger echo.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		authHandler:     authHandler,
		logger:          logger,
	}
}

// GetCategories lists the caller's categories ordered by (position, name).
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	categories, err := h.categoryService.List(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a category at the given or next free position.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Name     string `json:"name"`
		Position *int   `json:"position"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}

	category, err := h.categoryService.Create(c.Request().Context(), user.ID, req.Name, req.Position)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create category")
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory applies a partial update to one category.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	var req struct {
		Name     *string `json:"name"`
		Position *int    `json:"position"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.categoryService.Update(c.Request().Context(), user.ID, c.Param("id"), req.Name, req.Position)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update category")
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category; its contacts become uncategorized.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to load user")
	}

	if err := h.categoryService.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return writeError(c, h.logger, err, "Failed to delete category")
	}
	return okTrue(c)
}

// ReorderCategories rewrites positions for the posted id list atomically.
func (h *CategoryHandler) ReorderCategories(c echo.Context) error {
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

	if err := h.categoryService.Reorder(c.Request().Context(), user.ID, req.IDs); err != nil {
		return writeError(c, h.logger, err, "Failed to reorder categories")
	}
	return okTrue(c)
}
