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

func newDraftFixture() (DraftService, ContactService) {
	log := logger.NewDiscard()
	categoryRepo := memory.NewInMemoryCategoryRepository()
	contactRepo := memory.NewInMemoryContactRepository()
	sentMailRepo := memory.NewInMemorySentMailRepository()
	draftRepo := memory.NewInMemoryDraftRepository()
	return NewDraftService(draftRepo, contactRepo, log),
		NewContactService(contactRepo, categoryRepo, sentMailRepo, draftRepo, log)
}

func TestCreateDraftAppendsToUnplacedPool(t *testing.T) {
	drafts, _ := newDraftFixture()
	ctx := context.Background()

	first, err := drafts.Create(ctx, "user1", "first note")
	require.NoError(t, err)
	second, err := drafts.Create(ctx, "user1", "second note")
	require.NoError(t, err)

	assert.Nil(t, first.ContactID)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
}

func TestPlaceDraftOnContact(t *testing.T) {
	drafts, contacts := newDraftFixture()
	ctx := context.Background()

	contact, err := contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)
	draft, err := drafts.Create(ctx, "user1", "write back")
	require.NoError(t, err)

	placed, err := drafts.Place(ctx, "user1", draft.ID, contact.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, placed.ContactID)
	assert.Equal(t, contact.ID, *placed.ContactID)
	assert.Equal(t, 0, placed.Position)
}

func TestPlaceDraftAtIndexRenumbersSiblings(t *testing.T) {
	drafts, contacts := newDraftFixture()
	ctx := context.Background()

	contact, err := contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	a, err := drafts.Create(ctx, "user1", "a")
	require.NoError(t, err)
	b, err := drafts.Create(ctx, "user1", "b")
	require.NoError(t, err)
	c, err := drafts.Create(ctx, "user1", "c")
	require.NoError(t, err)

	_, err = drafts.Place(ctx, "user1", a.ID, contact.ID, nil)
	require.NoError(t, err)
	_, err = drafts.Place(ctx, "user1", b.ID, contact.ID, nil)
	require.NoError(t, err)

	// Drop c at the head of the contact's list.
	zero := 0
	placed, err := drafts.Place(ctx, "user1", c.ID, contact.ID, &zero)
	require.NoError(t, err)
	assert.Equal(t, 0, placed.Position)

	all, err := drafts.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Note)
	assert.Equal(t, "a", all[1].Note)
	assert.Equal(t, "b", all[2].Note)
}

func TestPlaceDraftClampsOutOfRangeIndex(t *testing.T) {
	drafts, contacts := newDraftFixture()
	ctx := context.Background()

	contact, err := contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)
	draft, err := drafts.Create(ctx, "user1", "note")
	require.NoError(t, err)

	far := 99
	placed, err := drafts.Place(ctx, "user1", draft.ID, contact.ID, &far)
	require.NoError(t, err)
	assert.Equal(t, 0, placed.Position)
}

func TestPlaceDraftForeignContactIsNotFound(t *testing.T) {
	drafts, contacts := newDraftFixture()
	ctx := context.Background()

	contact, err := contacts.Create(ctx, "user2", "Ana", "ana@example.com", nil)
	require.NoError(t, err)
	draft, err := drafts.Create(ctx, "user1", "note")
	require.NoError(t, err)

	_, err = drafts.Place(ctx, "user1", draft.ID, contact.ID, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUnplaceDraftReturnsToPoolTail(t *testing.T) {
	drafts, contacts := newDraftFixture()
	ctx := context.Background()

	contact, err := contacts.Create(ctx, "user1", "Ana", "ana@example.com", nil)
	require.NoError(t, err)

	placed, err := drafts.Create(ctx, "user1", "placed")
	require.NoError(t, err)
	_, err = drafts.Place(ctx, "user1", placed.ID, contact.ID, nil)
	require.NoError(t, err)

	pooled, err := drafts.Create(ctx, "user1", "pooled")
	require.NoError(t, err)

	empty := ""
	unplaced, err := drafts.Update(ctx, "user1", placed.ID, DraftPatch{ContactID: &empty})
	require.NoError(t, err)
	assert.Nil(t, unplaced.ContactID)
	assert.Equal(t, pooled.Position+1, unplaced.Position)
}

func TestDeleteDraft(t *testing.T) {
	drafts, _ := newDraftFixture()
	ctx := context.Background()

	draft, err := drafts.Create(ctx, "user1", "note")
	require.NoError(t, err)

	require.NoError(t, drafts.Delete(ctx, "user1", draft.ID))
	err = drafts.Delete(ctx, "user1", draft.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
