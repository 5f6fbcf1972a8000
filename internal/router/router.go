package router

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"touchbase/internal/handler"
	"touchbase/internal/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	meHandler *handler.MeHandler,
	categoryHandler *handler.CategoryHandler,
	contactHandler *handler.ContactHandler,
	draftHandler *handler.DraftHandler,
	dashboardHandler *handler.DashboardHandler,
	dndHandler *handler.DndHandler,
	sentMailHandler *handler.SentMailHandler,
	templatesPath string,
) {
	// Public routes
	e.GET("/auth/:provider", authHandler.BeginAuthHandler)
	e.GET("/auth/:provider/callback", authHandler.CallbackHandler)
	e.GET("/auth/logout", authHandler.LogoutHandler)

	e.GET("/", servePage(templatesPath, "index.html"))
	e.GET("/app", servePage(templatesPath, "app.html"))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Protected API routes
	protected := e.Group("/api")
	protected.Use(middleware.AuthMiddleware(authHandler, e.Logger))

	protected.GET("/me", meHandler.GetMe)
	protected.PATCH("/me", meHandler.UpdateMe)

	protected.GET("/categories", categoryHandler.GetCategories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.PATCH("/categories/:id", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	protected.POST("/categories/reorder", categoryHandler.ReorderCategories)

	protected.GET("/contacts", contactHandler.GetContacts)
	protected.POST("/contacts", contactHandler.CreateContact)
	protected.PATCH("/contacts/:id", contactHandler.UpdateContact)
	protected.DELETE("/contacts/:id", contactHandler.DeleteContact)
	protected.POST("/contacts/reorder", contactHandler.ReorderContacts)
	protected.POST("/contacts/bulk", contactHandler.BulkCreateContacts)
	protected.POST("/contacts/import", contactHandler.ImportContactsCSV)
	protected.GET("/contacts/export", contactHandler.ExportContactsCSV)

	protected.GET("/manual-drafts", draftHandler.GetDrafts)
	protected.POST("/manual-drafts", draftHandler.CreateDraft)
	protected.PATCH("/manual-drafts/:id", draftHandler.UpdateDraft)
	protected.DELETE("/manual-drafts/:id", draftHandler.DeleteDraft)
	protected.POST("/manual-drafts/reorder", draftHandler.ReorderDrafts)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.POST("/dnd", dndHandler.HandleDrop)
	protected.POST("/sentmail/sync", sentMailHandler.SyncSentMail)
}

func servePage(templatesPath, name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := filepath.Join(templatesPath, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Template not found: %v", err))
		}
		return c.HTML(http.StatusOK, string(content))
	}
}
