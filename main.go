package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"touchbase/internal/config"
	"touchbase/internal/gmail"
	"touchbase/internal/handler"
	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
	"touchbase/internal/repository/postgres"
	"touchbase/internal/repository/sqlite"
	"touchbase/internal/router"
	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Postgres when DATABASE_URL is set, a local SQLite file otherwise.
	var userRepo repository.UserRepository
	var categoryRepo repository.CategoryRepository
	var contactRepo repository.ContactRepository
	var sentMailRepo repository.SentMailRepository
	var draftRepo repository.DraftRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		userRepo = postgres.NewPostgresUserRepository(db)
		categoryRepo = postgres.NewPostgresCategoryRepository(db)
		contactRepo = postgres.NewPostgresContactRepository(db)
		sentMailRepo = postgres.NewPostgresSentMailRepository(db)
		draftRepo = postgres.NewPostgresDraftRepository(db)

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open SQLite database:", err)
		}
		defer db.Close()

		if err := sqlite.EnsureSchema(db); err != nil {
			log.Fatal("Failed to initialize SQLite schema:", err)
		}

		userRepo = sqlite.NewSQLiteUserRepository(db)
		categoryRepo = sqlite.NewSQLiteCategoryRepository(db)
		contactRepo = sqlite.NewSQLiteContactRepository(db)
		sentMailRepo = sqlite.NewSQLiteSentMailRepository(db)
		draftRepo = sqlite.NewSQLiteDraftRepository(db)

		appLogger.Info("Using SQLite repositories at", cfg.SQLitePath)
	}

	mailClient := NewUserSpecificMailClient(userRepo, appLogger)

	authService := service.NewAuthService(userRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, contactRepo, appLogger)
	contactService := service.NewContactService(contactRepo, categoryRepo, sentMailRepo, draftRepo, appLogger)
	draftService := service.NewDraftService(draftRepo, contactRepo, appLogger)
	dashboardService := service.NewDashboardService(contactRepo, categoryRepo, sentMailRepo, draftRepo, appLogger)
	sentMailService := service.NewSentMailService(sentMailRepo, contactRepo, mailClient, cfg.MaxSyncMessages, appLogger)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	authHandler := handler.NewAuthHandler(authService, cfg, e.Logger)
	meHandler := handler.NewMeHandler(authService, authHandler, e.Logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, authHandler, e.Logger)
	contactHandler := handler.NewContactHandler(contactService, authHandler, e.Logger)
	draftHandler := handler.NewDraftHandler(draftService, authHandler, e.Logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, authHandler, e.Logger)
	dndHandler := handler.NewDndHandler(contactService, draftService, dashboardService, authHandler, e.Logger)
	sentMailHandler := handler.NewSentMailHandler(sentMailService, authHandler, e.Logger)

	templatesPath := filepath.Join(getProjectRoot(), "internal", "templates")
	router.SetupRoutes(
		e,
		authHandler,
		meHandler,
		categoryHandler,
		contactHandler,
		draftHandler,
		dashboardHandler,
		dndHandler,
		sentMailHandler,
		templatesPath,
	)

	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
	}
}

// UserSpecificMailClient builds a Gmail client per call with the requesting
// user's stored access token.
type UserSpecificMailClient struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewUserSpecificMailClient(userRepo repository.UserRepository, logger *logger.Logger) service.MailClient {
	return &UserSpecificMailClient{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (u *UserSpecificMailClient) ListSentMessages(ctx context.Context, userID string, maxResults int64) ([]*model.SentMessage, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	if user.AccessToken == "" {
		return nil, fmt.Errorf("access token not available for user: %s", userID)
	}

	client, err := gmail.NewClient(user.AccessToken, u.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}
	return client.ListSentMessages(ctx, maxResults)
}

// getProjectRoot walks up from the working directory until it finds the
// templates directory.
func getProjectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	current := wd
	for {
		if _, err := os.Stat(filepath.Join(current, "internal", "templates")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return wd
		}
		current = parent
	}
}
