package handler

import (
	"net/http"

	"touchbase/internal/config"
	"touchbase/internal/model"
	"touchbase/internal/service"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

const userContextKey = "touchbase.user"

type AuthHandler struct {
	authService service.AuthService
	store       sessions.Store
	config      *config.Config
	logger      echo.Logger
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config, logger echo.Logger) *AuthHandler {
	store := NewSessionStore([]byte(cfg.SessionSecret))
	gothic.Store = store

	goth.UseProviders(
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/auth/google/callback",
			"https://www.googleapis.com/auth/gmail.readonly",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		),
	)

	return &AuthHandler{
		authService: authService,
		store:       store,
		config:      cfg,
		logger:      logger,
	}
}

// BeginAuthHandler initiates the OAuth flow.
func (h *AuthHandler) BeginAuthHandler(c echo.Context) error {
	provider := c.Param("provider")
	if provider != "google" {
		return badRequest(c, "Invalid provider")
	}

	// Goth reads the provider from the query string.
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Response(), req)
	return nil
}

// CallbackHandler completes the OAuth flow and opens a session.
func (h *AuthHandler) CallbackHandler(c echo.Context) error {
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()

	googleUser, err := gothic.CompleteUserAuth(c.Response(), req)
	if err != nil {
		h.logger.Error("Failed to complete user auth: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Authentication failed",
		})
	}

	user, err := h.authService.GetOrCreateUser(
		c.Request().Context(),
		googleUser.Provider+"_"+googleUser.UserID,
		googleUser.Email,
		googleUser.Name,
		googleUser.AccessToken,
		googleUser.RefreshToken,
		googleUser.ExpiresAt,
	)
	if err != nil {
		h.logger.Error("Failed to get or create user: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to process user",
		})
	}

	session, _ := h.store.Get(req, SessionName)
	session.Values["user_id"] = user.ID
	if err := session.Save(req, c.Response()); err != nil {
		h.logger.Error("Failed to save session: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to save session",
		})
	}

	return c.Redirect(http.StatusTemporaryRedirect, "/app")
}

// LogoutHandler clears the session.
func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	req := c.Request()
	session, _ := h.store.Get(req, SessionName)
	session.Options.MaxAge = -1
	_ = session.Save(req, c.Response())
	_ = gothic.Logout(c.Response(), req)

	return c.Redirect(http.StatusTemporaryRedirect, "/")
}

// GetCurrentUser resolves the session to a user row. Returns ErrNoSession
// when no valid session cookie is present and the repository's not-found
// error when the session references a deleted user.
func (h *AuthHandler) GetCurrentUser(c echo.Context) (*model.User, error) {
	if u, ok := c.Get(userContextKey).(*model.User); ok && u != nil {
		return u, nil
	}

	session, err := h.store.Get(c.Request(), SessionName)
	if err != nil {
		return nil, ErrNoSession
	}
	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrNoSession
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return nil, err
	}
	c.Set(userContextKey, user)
	return user, nil
}
