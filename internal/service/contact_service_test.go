package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
	"touchbase/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactFixture struct {
	contacts   ContactService
	categories CategoryService
	drafts     DraftService
	sentMails  *memory.InMemorySentMailRepository
}

func newContactFixture() *contactFixture {
	log := logger.NewDiscard()
	categoryRepo := memory.NewInMemoryCategoryRepository()
	contactRepo := memory.NewInMemoryContactRepository()
	sentMailRepo := memory.NewInMemorySentMailRepository()
	draftRepo := memory.NewInMemoryDraftRepository()
	return &contactFixture{
		contacts:   NewContactService(contactRepo, categoryRepo, sentMailRepo, draftRepo, log),
		categories: NewCategoryService(categoryRepo, contactRepo, log),
		drafts:     NewDraftService(draftRepo, contactRepo, log),
		sentMails:  sentMailRepo,
	}
}

func TestCreateContactValidation(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	_, err := f.contacts.Create(ctx, "user1", "", "ana@example.com", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.contacts.Create(ctx, "user1", "Ana", "not-an-email", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateContactDuplicateEmailConflicts(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	_, err := f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	_, err = f.contacts.Create(ctx, "user1", "Ana Clone", "ANA@example.com", nil)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestCreateContactForeignCategoryIsNotFound(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	category, err := f.categories.Create(ctx, "user2", "VIP", nil)
	require.NoError(t, err)

	_, err = f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", &category.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateContactClearsFields(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	category, err := f.categories.Create(ctx, "user1", "VIP", nil)
	require.NoError(t, err)
	contact, err := f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", &category.ID)
	require.NoError(t, err)

	sentAt := "2026-08-01T10:00:00Z"
	updated, err := f.contacts.Update(ctx, "user1", contact.ID, ContactPatch{LastSentAt: &sentAt})
	require.NoError(t, err)
	require.NotNil(t, updated.LastSentAt)
	assert.Equal(t, 2026, updated.LastSentAt.Year())

	empty := ""
	updated, err = f.contacts.Update(ctx, "user1", contact.ID, ContactPatch{CategoryID: &empty, LastSentAt: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
	assert.Nil(t, updated.LastSentAt)
}

func TestUpdateContactBadTimestamp(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	contact, err := f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	bad := "yesterday"
	_, err = f.contacts.Update(ctx, "user1", contact.ID, ContactPatch{LastSentAt: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteContactCascades(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	contact, err := f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	draft, err := f.drafts.Create(ctx, "user1", "call about trip")
	require.NoError(t, err)
	_, err = f.drafts.Place(ctx, "user1", draft.ID, contact.ID, nil)
	require.NoError(t, err)

	mail := model.NewSentMail(contact.ID, "gm-1", "Hello", time.Now())
	require.NoError(t, f.sentMails.Create(ctx, mail))

	require.NoError(t, f.contacts.Delete(ctx, "user1", contact.ID))

	mails, err := f.sentMails.FindByContactID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Empty(t, mails)

	// The draft survives, back in the unplaced pool.
	drafts, err := f.drafts.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Nil(t, drafts[0].ContactID)
}

func TestAssignCategoryRoundTrip(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	category, err := f.categories.Create(ctx, "user1", "VIP", nil)
	require.NoError(t, err)
	contact, err := f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	updated, err := f.contacts.AssignCategory(ctx, "user1", contact.ID, &category.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, category.ID, *updated.CategoryID)

	updated, err = f.contacts.AssignCategory(ctx, "user1", contact.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
}

func TestBulkUpsertMixedRows(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	existing, err := f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	contacts, rowErrors, err := f.contacts.BulkUpsert(ctx, "user1", []BulkContact{
		{Name: "Ana Maria", Email: "ana@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Broken", Email: "nope"},
	})
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	require.Len(t, rowErrors, 1)

	assert.Equal(t, existing.ID, contacts[0].ID)
	assert.Equal(t, "Ana Maria", contacts[0].Name)
	assert.Equal(t, 3, rowErrors[0].Line)
	assert.Equal(t, "nope", rowErrors[0].Email)
}

func TestBulkUpsertKeepsSourceLines(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	// Rows carrying source line numbers, as the CSV import path passes them.
	_, rowErrors, err := f.contacts.BulkUpsert(ctx, "user1", []BulkContact{
		{Name: "Ana", Email: "ana@example.com", Line: 4},
		{Name: "Broken", Email: "nope", Line: 7},
	})
	require.NoError(t, err)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 7, rowErrors[0].Line)
}

func TestImportCSVReportsOriginalLineNumbers(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	// Header on line 1, blank line 3: the bad row sits on source line 5.
	text := "Name,Email\nAna,ana@example.com\n\nBob,bob@example.com\nBroken,nope\n"

	contacts, rowErrors, err := f.contacts.ImportCSV(ctx, "user1", text)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 5, rowErrors[0].Line)
}

func TestImportCSVSniffsDelimiter(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	text := strings.Join([]string{
		"Name;Email",
		"Ana;ana@example.com",
		"Bob;bob@example.com",
		"Broken;not-an-email",
	}, "\n")

	contacts, rowErrors, err := f.contacts.ImportCSV(ctx, "user1", text)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Len(t, rowErrors, 1)
}

func TestExportCSVIncludesCategoryNames(t *testing.T) {
	f := newContactFixture()
	ctx := context.Background()

	category, err := f.categories.Create(ctx, "user1", "VIP", nil)
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, "user1", "Ana", "ana@example.com", &category.ID)
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, "user1", "Bob", "bob@example.com", nil)
	require.NoError(t, err)

	csv, err := f.contacts.ExportCSV(ctx, "user1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"name","email","category"`, lines[0])
	assert.Contains(t, csv, `"Ana","ana@example.com","VIP"`)
	assert.Contains(t, csv, `"Bob","bob@example.com",""`)
}
