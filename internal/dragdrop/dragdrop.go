// Package dragdrop types the payload the dashboard passes through the
// browser drag data channel and the pure list move it drives. Decoding
// happens once at the drop boundary; handlers branch on the kind.
package dragdrop

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindContactMove Kind = "contact-move"
	KindMailReorder Kind = "mail-reorder"
	KindDraftPlace  Kind = "draft-place"
)

// ContactMove reassigns a contact to a category (nil = uncategorized).
type ContactMove struct {
	ContactID  string  `json:"contactId"`
	CategoryID *string `json:"categoryId"`
}

// MailReorder moves one mail card within its contact's list.
type MailReorder struct {
	ContactID string `json:"contactId"`
	MailID    string `json:"mailId"`
	ToIndex   int    `json:"toIndex"`
}

// DraftPlace drops an unplaced draft onto a contact. A nil ToIndex appends.
type DraftPlace struct {
	DraftID   string `json:"draftId"`
	ContactID string `json:"contactId"`
	ToIndex   *int   `json:"toIndex"`
}

// Payload is the decoded drag payload; exactly one branch is set, matching
// Kind.
type Payload struct {
	Kind        Kind
	ContactMove *ContactMove
	MailReorder *MailReorder
	DraftPlace  *DraftPlace
}

// Decode parses the raw drag payload once and returns the typed union.
func Decode(data []byte) (*Payload, error) {
	var env struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed drag payload: %w", err)
	}

	p := &Payload{Kind: env.Kind}
	switch env.Kind {
	case KindContactMove:
		p.ContactMove = &ContactMove{}
		if err := json.Unmarshal(data, p.ContactMove); err != nil {
			return nil, fmt.Errorf("malformed contact-move payload: %w", err)
		}
		if p.ContactMove.ContactID == "" {
			return nil, fmt.Errorf("contact-move payload missing contactId")
		}
	case KindMailReorder:
		p.MailReorder = &MailReorder{ToIndex: -1}
		if err := json.Unmarshal(data, p.MailReorder); err != nil {
			return nil, fmt.Errorf("malformed mail-reorder payload: %w", err)
		}
		if p.MailReorder.ContactID == "" || p.MailReorder.MailID == "" {
			return nil, fmt.Errorf("mail-reorder payload missing ids")
		}
	case KindDraftPlace:
		p.DraftPlace = &DraftPlace{}
		if err := json.Unmarshal(data, p.DraftPlace); err != nil {
			return nil, fmt.Errorf("malformed draft-place payload: %w", err)
		}
		if p.DraftPlace.DraftID == "" || p.DraftPlace.ContactID == "" {
			return nil, fmt.Errorf("draft-place payload missing ids")
		}
	default:
		return nil, fmt.Errorf("unknown drag payload kind %q", env.Kind)
	}
	return p, nil
}

// Move returns ids with the element at from reinserted at to. The target
// index is clamped to [0, len]; an out-of-range from leaves ids untouched.
// The input slice is not modified.
func Move(ids []string, from, to int) []string {
	if from < 0 || from >= len(ids) {
		out := make([]string, len(ids))
		copy(out, ids)
		return out
	}

	moved := ids[from]
	rest := make([]string, 0, len(ids)-1)
	rest = append(rest, ids[:from]...)
	rest = append(rest, ids[from+1:]...)

	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}

	out := make([]string, 0, len(ids))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}

// IndexOf returns the index of id in ids, or -1.
func IndexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
