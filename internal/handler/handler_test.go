package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"touchbase/internal/config"
	"touchbase/internal/gmail"
	"touchbase/internal/handler"
	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository/memory"
	"touchbase/internal/router"
	"touchbase/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e          *echo.Echo
	user       *model.User
	cookie     *http.Cookie
	userRepo   *memory.InMemoryUserRepository
	mailClient *gmail.MockMailClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Port:               "8080",
		BaseURL:            "http://localhost:8080",
		GoogleClientID:     "test-client-id",
		GoogleClientSecret: "test-client-secret",
		SessionSecret:      "test-session-secret",
		MaxSyncMessages:    100,
	}
	log := logger.NewDiscard()

	userRepo := memory.NewInMemoryUserRepository()
	categoryRepo := memory.NewInMemoryCategoryRepository()
	contactRepo := memory.NewInMemoryContactRepository()
	sentMailRepo := memory.NewInMemorySentMailRepository()
	draftRepo := memory.NewInMemoryDraftRepository()
	mailClient := &gmail.MockMailClient{}

	authService := service.NewAuthService(userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, contactRepo, log)
	contactService := service.NewContactService(contactRepo, categoryRepo, sentMailRepo, draftRepo, log)
	draftService := service.NewDraftService(draftRepo, contactRepo, log)
	dashboardService := service.NewDashboardService(contactRepo, categoryRepo, sentMailRepo, draftRepo, log)
	sentMailService := service.NewSentMailService(sentMailRepo, contactRepo, mailClient, cfg.MaxSyncMessages, log)

	e := echo.New()
	authHandler := handler.NewAuthHandler(authService, cfg, e.Logger)
	meHandler := handler.NewMeHandler(authService, authHandler, e.Logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, authHandler, e.Logger)
	contactHandler := handler.NewContactHandler(contactService, authHandler, e.Logger)
	draftHandler := handler.NewDraftHandler(draftService, authHandler, e.Logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, authHandler, e.Logger)
	dndHandler := handler.NewDndHandler(contactService, draftService, dashboardService, authHandler, e.Logger)
	sentMailHandler := handler.NewSentMailHandler(sentMailService, authHandler, e.Logger)

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
		t.TempDir(),
	)

	user := model.NewUser("google_test", "me@example.com", "Test User", "token", "", time.Now().Add(time.Hour))
	require.NoError(t, userRepo.Create(context.Background(), user))

	return &testServer{
		e:          e,
		user:       user,
		cookie:     mintSessionCookie(t, cfg.SessionSecret, user.ID),
		userRepo:   userRepo,
		mailClient: mailClient,
	}
}

// mintSessionCookie encodes a login session the way the server's own cookie
// store would.
func mintSessionCookie(t *testing.T, secret, userID string) *http.Cookie {
	t.Helper()

	store := handler.NewSessionStore([]byte(secret))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	sess, err := store.Get(req, handler.SessionName)
	require.NoError(t, err)
	sess.Values["user_id"] = userID
	require.NoError(t, sess.Save(req, rec))

	for _, c := range rec.Result().Cookies() {
		if c.Name == handler.SessionName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.AddCookie(ts.cookie)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestAPIWithoutSessionIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionForDeletedUserIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.cookie = mintSessionCookie(t, "test-session-secret", "ghost-user")

	rec := ts.do(t, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var me model.User
	decode(t, rec, &me)
	assert.Equal(t, "me@example.com", me.Email)
	assert.Equal(t, model.DefaultStaleThresholdDays, me.StaleThresholdDays)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestUpdateMeClampsThreshold(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPatch, "/api/me", `{"staleThresholdDays": 500}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var me model.User
	decode(t, rec, &me)
	assert.Equal(t, model.MaxStaleThresholdDays, me.StaleThresholdDays)
}

func TestCategoryLifecycleDetachesContacts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/categories", `{"name":"VIP"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var category model.Category
	decode(t, rec, &category)

	rec = ts.do(t, http.MethodPost, "/api/contacts",
		`{"name":"Ana","email":"ana@example.com","categoryId":"`+category.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact model.Contact
	decode(t, rec, &contact)
	require.NotNil(t, contact.CategoryID)

	rec = ts.do(t, http.MethodDelete, "/api/categories/"+category.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var contacts []*model.Contact
	decode(t, rec, &contacts)
	require.Len(t, contacts, 1)
	assert.Nil(t, contacts[0].CategoryID)
}

func TestDuplicateCategoryConflicts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/categories", `{"name":"Friends"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/categories", `{"name":"friends"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPatchContactOutOfOwnerIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPatch, "/api/contacts/some-other-id", `{"name":"Hijack"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDndContactMove(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/categories", `{"name":"VIP"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var category model.Category
	decode(t, rec, &category)

	rec = ts.do(t, http.MethodPost, "/api/contacts", `{"name":"Ana","email":"ana@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact model.Contact
	decode(t, rec, &contact)

	rec = ts.do(t, http.MethodPost, "/api/dnd",
		`{"kind":"contact-move","contactId":"`+contact.ID+`","categoryId":"`+category.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var moved model.Contact
	decode(t, rec, &moved)
	require.NotNil(t, moved.CategoryID)
	assert.Equal(t, category.ID, *moved.CategoryID)
}

func TestDndUnknownKindIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/dnd", `{"kind":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDndDraftPlace(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/contacts", `{"name":"Ana","email":"ana@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact model.Contact
	decode(t, rec, &contact)

	rec = ts.do(t, http.MethodPost, "/api/manual-drafts", `{"note":"say hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var draft model.ManualDraft
	decode(t, rec, &draft)
	require.Nil(t, draft.ContactID)

	rec = ts.do(t, http.MethodPost, "/api/dnd",
		`{"kind":"draft-place","draftId":"`+draft.ID+`","contactId":"`+contact.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var placed model.ManualDraft
	decode(t, rec, &placed)
	require.NotNil(t, placed.ContactID)
	assert.Equal(t, contact.ID, *placed.ContactID)
}

func TestCreateDraftWithoutNote(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/manual-drafts", `{}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var draft model.ManualDraft
	decode(t, rec, &draft)
	assert.Empty(t, draft.Note)
	assert.Nil(t, draft.ContactID)
	assert.Equal(t, 0, draft.Position)

	// A second empty draft lands behind the first.
	rec = ts.do(t, http.MethodPost, "/api/manual-drafts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &draft)
	assert.Equal(t, 1, draft.Position)
}

func TestImportAndExportCSV(t *testing.T) {
	ts := newTestServer(t)

	csv := "Name,Email\nAna,ana@example.com\nBob,bob@example.com\nBroken,nope\n"
	req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", strings.NewReader(csv))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	req.AddCookie(ts.cookie)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result struct {
		Contacts []*model.Contact   `json:"contacts"`
		Errors   []service.RowError `json:"errors"`
	}
	decode(t, rec, &result)
	assert.Len(t, result.Contacts, 2)
	assert.Len(t, result.Errors, 1)

	rec = ts.do(t, http.MethodGet, "/api/contacts/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "contacts.csv")
	assert.Contains(t, rec.Body.String(), `"Ana","ana@example.com"`)
	assert.Contains(t, rec.Body.String(), `"Bob","bob@example.com"`)
}

func TestSyncEndpointRecordsSentMail(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/contacts", `{"name":"Ana","email":"ana@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	ts.mailClient.Messages = []*model.SentMessage{
		{GmailID: "gm-1", To: []string{"ana@example.com"}, Subject: "Hi", SentAt: time.Now()},
	}

	rec = ts.do(t, http.MethodPost, "/api/sentmail/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]int
	decode(t, rec, &result)
	assert.Equal(t, 1, result["synced"])

	rec = ts.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash service.Dashboard
	decode(t, rec, &dash)
	require.Len(t, dash.Contacts, 1)
	require.Len(t, dash.Contacts[0].SentMail, 1)
	assert.Equal(t, "gm-1", dash.Contacts[0].SentMail[0].GmailID)
	assert.Equal(t, "fresh", string(dash.Contacts[0].Staleness))
}

func TestReorderContactsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var ids []string
	for _, row := range []string{`{"name":"Ana","email":"ana@example.com"}`, `{"name":"Bob","email":"bob@example.com"}`} {
		rec := ts.do(t, http.MethodPost, "/api/contacts", row)
		require.Equal(t, http.StatusCreated, rec.Code)
		var contact model.Contact
		decode(t, rec, &contact)
		ids = append(ids, contact.ID)
	}

	body, err := json.Marshal(map[string][]string{"ids": {ids[1], ids[0]}})
	require.NoError(t, err)
	rec := ts.do(t, http.MethodPost, "/api/contacts/reorder", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/contacts", "")
	var contacts []*model.Contact
	decode(t, rec, &contacts)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Bob", contacts[0].Name)
	assert.Equal(t, "Ana", contacts[1].Name)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
