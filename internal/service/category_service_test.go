package service

import (
	"context"
	"testing"

	"touchbase/internal/logger"
	"touchbase/internal/repository"
	"touchbase/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture() (CategoryService, ContactService) {
	log := logger.NewDiscard()
	categoryRepo := memory.NewInMemoryCategoryRepository()
	contactRepo := memory.NewInMemoryContactRepository()
	sentMailRepo := memory.NewInMemorySentMailRepository()
	draftRepo := memory.NewInMemoryDraftRepository()
	return NewCategoryService(categoryRepo, contactRepo, log),
		NewContactService(contactRepo, categoryRepo, sentMailRepo, draftRepo, log)
}

func TestCreateCategoryAppendsAtTail(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, "user1", "Family", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "user1", "Work", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
}

func TestCreateCategoryRejectsBlankName(t *testing.T) {
	svc, _ := newCategoryFixture()

	_, err := svc.Create(context.Background(), "user1", "   ", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCategoryDuplicateNameConflicts(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "user1", "Friends", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user1", "friends", nil)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestCreateCategorySameNameDifferentUsers(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "user1", "Friends", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user2", "Friends", nil)
	assert.NoError(t, err)
}

func TestUpdateCategoryRename(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	category, err := svc.Create(ctx, "user1", "Freinds", nil)
	require.NoError(t, err)

	name := "Friends"
	updated, err := svc.Update(ctx, "user1", category.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Friends", updated.Name)
}

func TestUpdateCategoryNotOwnedIsNotFound(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	category, err := svc.Create(ctx, "user1", "Friends", nil)
	require.NoError(t, err)

	name := "Enemies"
	_, err = svc.Update(ctx, "user2", category.ID, &name, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCategoryDetachesContacts(t *testing.T) {
	categorySvc, contactSvc := newCategoryFixture()
	ctx := context.Background()

	category, err := categorySvc.Create(ctx, "user1", "VIP", nil)
	require.NoError(t, err)
	contact, err := contactSvc.Create(ctx, "user1", "Ana", "ana@example.com", &category.ID)
	require.NoError(t, err)
	require.NotNil(t, contact.CategoryID)

	require.NoError(t, categorySvc.Delete(ctx, "user1", category.ID))

	contacts, err := contactSvc.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Nil(t, contacts[0].CategoryID)
}

func TestReorderCategories(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	a, err := svc.Create(ctx, "user1", "A", nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "user1", "B", nil)
	require.NoError(t, err)
	c, err := svc.Create(ctx, "user1", "C", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(ctx, "user1", []string{c.ID, a.ID, b.ID}))

	categories, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "C", categories[0].Name)
	assert.Equal(t, "A", categories[1].Name)
	assert.Equal(t, "B", categories[2].Name)
}

func TestReorderCategoriesForeignIDFailsWhole(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	a, err := svc.Create(ctx, "user1", "A", nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "user1", "B", nil)
	require.NoError(t, err)
	other, err := svc.Create(ctx, "user2", "X", nil)
	require.NoError(t, err)

	err = svc.Reorder(ctx, "user1", []string{b.ID, other.ID, a.ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Positions untouched after the failed reorder.
	categories, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "A", categories[0].Name)
	assert.Equal(t, "B", categories[1].Name)
}
