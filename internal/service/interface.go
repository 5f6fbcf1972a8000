package service

import (
	"context"
	"errors"
	"time"

	"touchbase/internal/model"
	"touchbase/internal/staleness"
)

// ErrValidation marks bad input the caller can fix; handlers map it to 400.
var ErrValidation = errors.New("validation failed")

type AuthService interface {
	GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	// UpdateSettings patches the profile; the staleness threshold is
	// clamped to the supported range rather than rejected.
	UpdateSettings(ctx context.Context, userID string, name *string, staleThresholdDays *int) (*model.User, error)
}

type CategoryService interface {
	Create(ctx context.Context, userID, name string, position *int) (*model.Category, error)
	List(ctx context.Context, userID string) ([]*model.Category, error)
	Update(ctx context.Context, userID, id string, name *string, position *int) (*model.Category, error)
	// Delete detaches the category's contacts before removing the row.
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
}

// ContactPatch carries the fields present in a PATCH body. A nil pointer
// means "leave unchanged"; empty-string CategoryID/LastSentAt clear the
// field.
type ContactPatch struct {
	Name       *string
	Email      *string
	CategoryID *string
	Position   *int
	LastSentAt *string
}

// BulkContact is one row of a bulk create-or-update request. Line is the
// 1-based source line for error reporting; zero means "use the slice index",
// which is what JSON bulk requests get.
type BulkContact struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	CategoryID *string `json:"categoryId"`
	Line       int     `json:"-"`
}

// RowError reports a rejected bulk/import row without failing the batch.
type RowError struct {
	Line   int    `json:"line"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type ContactService interface {
	Create(ctx context.Context, userID, name, email string, categoryID *string) (*model.Contact, error)
	List(ctx context.Context, userID string) ([]*model.Contact, error)
	Update(ctx context.Context, userID, id string, patch ContactPatch) (*model.Contact, error)
	// Delete removes the contact's sent-mail log and returns its drafts to
	// the unplaced pool before removing the row.
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
	AssignCategory(ctx context.Context, userID, contactID string, categoryID *string) (*model.Contact, error)
	BulkUpsert(ctx context.Context, userID string, rows []BulkContact) ([]*model.Contact, []RowError, error)
	ImportCSV(ctx context.Context, userID, text string) ([]*model.Contact, []RowError, error)
	ExportCSV(ctx context.Context, userID string) (string, error)
}

// DraftPatch mirrors ContactPatch for manual drafts; empty-string ContactID
// returns the draft to the unplaced pool.
type DraftPatch struct {
	Note      *string
	ContactID *string
	Position  *int
}

type DraftService interface {
	Create(ctx context.Context, userID, note string) (*model.ManualDraft, error)
	List(ctx context.Context, userID string) ([]*model.ManualDraft, error)
	Update(ctx context.Context, userID, id string, patch DraftPatch) (*model.ManualDraft, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
	// Place drops an unplaced draft onto a contact at toIndex (nil appends)
	// and renumbers that contact's drafts contiguously.
	Place(ctx context.Context, userID, draftID, contactID string, toIndex *int) (*model.ManualDraft, error)
}

// DashboardContact decorates a contact with its staleness bucket and nested
// sent mail and drafts for the single dashboard fetch.
type DashboardContact struct {
	*model.Contact
	Staleness staleness.Bucket     `json:"staleness"`
	SentMail  []*model.SentMail    `json:"sentMail"`
	Drafts    []*model.ManualDraft `json:"drafts"`
}

type Dashboard struct {
	Categories         []*model.Category    `json:"categories"`
	Contacts           []*DashboardContact  `json:"contacts"`
	UnplacedDrafts     []*model.ManualDraft `json:"unplacedDrafts"`
	StaleThresholdDays int                  `json:"staleThresholdDays"`
}

type DashboardService interface {
	Build(ctx context.Context, user *model.User) (*Dashboard, error)
	// MoveMail reorders one mail card within its contact's list and returns
	// the new id order. Positions for this path live in array order only;
	// nothing is persisted.
	MoveMail(ctx context.Context, userID, contactID, mailID string, toIndex int) ([]string, error)
}

type SentMailService interface {
	// Sync pulls recently sent messages from the mail provider, records the
	// ones addressed to known contacts, and advances lastSentAt. Returns
	// the number of new sent-mail rows.
	Sync(ctx context.Context, user *model.User) (int, error)
}

// MailClient fetches a user's sent messages from the mail provider.
type MailClient interface {
	ListSentMessages(ctx context.Context, userID string, maxResults int64) ([]*model.SentMessage, error)
}
