package model

import (
	"time"

	"github.com/google/uuid"
)

// ManualDraft is a note the user keeps around until it is sent. A draft with
// no contact lives in the single ordered "unplaced" pool.
type ManualDraft struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	ContactID *string    `json:"contactId"`
	Note      string     `json:"note"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"createdAt"`
	SentAt    *time.Time `json:"sentAt"`
}

func NewManualDraft(userID, note string, position int) *ManualDraft {
	return &ManualDraft{
		ID:        uuid.New().String(),
		UserID:    userID,
		Note:      note,
		Position:  position,
		CreatedAt: time.Now(),
	}
}
