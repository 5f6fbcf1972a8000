package dragdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContactMove(t *testing.T) {
	p, err := Decode([]byte(`{"kind":"contact-move","contactId":"c1","categoryId":"cat1"}`))
	require.NoError(t, err)
	assert.Equal(t, KindContactMove, p.Kind)
	require.NotNil(t, p.ContactMove)
	assert.Equal(t, "c1", p.ContactMove.ContactID)
	require.NotNil(t, p.ContactMove.CategoryID)
	assert.Equal(t, "cat1", *p.ContactMove.CategoryID)

	// Dropping onto "uncategorized" carries a null category.
	p, err = Decode([]byte(`{"kind":"contact-move","contactId":"c1","categoryId":null}`))
	require.NoError(t, err)
	assert.Nil(t, p.ContactMove.CategoryID)
}

func TestDecodeMailReorder(t *testing.T) {
	p, err := Decode([]byte(`{"kind":"mail-reorder","contactId":"c1","mailId":"m1","toIndex":2}`))
	require.NoError(t, err)
	require.NotNil(t, p.MailReorder)
	assert.Equal(t, 2, p.MailReorder.ToIndex)
}

func TestDecodeDraftPlace(t *testing.T) {
	p, err := Decode([]byte(`{"kind":"draft-place","draftId":"d1","contactId":"c1"}`))
	require.NoError(t, err)
	require.NotNil(t, p.DraftPlace)
	assert.Nil(t, p.DraftPlace.ToIndex)
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"resize-window"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"kind":"contact-move"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"kind":"draft-place","draftId":"d1"}`))
	assert.Error(t, err)
}

func TestMove(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"b", "c", "a", "d"}, Move(ids, 0, 2))
	assert.Equal(t, []string{"d", "a", "b", "c"}, Move(ids, 3, 0))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Move(ids, 1, 1))

	// Target index clamps to the ends.
	assert.Equal(t, []string{"b", "a", "c", "d"}, Move(ids, 1, -5))
	assert.Equal(t, []string{"a", "c", "d", "b"}, Move(ids, 1, 99))

	// Out-of-range source is a no-op copy.
	assert.Equal(t, ids, Move(ids, 7, 0))
	assert.Equal(t, ids, Move(ids, -1, 0))

	// Input is never mutated.
	_ = Move(ids, 0, 3)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, IndexOf([]string{"a", "b"}, "b"))
	assert.Equal(t, -1, IndexOf([]string{"a", "b"}, "z"))
	assert.Equal(t, -1, IndexOf(nil, "a"))
}
