package repository

import (
	"context"
	"errors"

	"touchbase/internal/model"
)

// ErrNotFound covers both truly absent rows and rows owned by another user;
// callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrConflict signals a unique-constraint violation (category name or
// contact email within one user's data).
var ErrConflict = errors.New("already exists")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// CategoryRepository defines the interface for category data operations.
// Every lookup and mutation is scoped by the owning user id.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, userID, id string) (*model.Category, error)
	FindByName(ctx context.Context, userID, name string) (*model.Category, error)
	FindAll(ctx context.Context, userID string) ([]*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, userID, id string) error
	// Reorder sets position i on ids[i] inside one transaction. Any id not
	// owned by userID fails the whole operation with ErrNotFound.
	Reorder(ctx context.Context, userID string, ids []string) error
	MaxPosition(ctx context.Context, userID string) (int, error)
}

// ContactRepository defines the interface for contact data operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, userID, id string) (*model.Contact, error)
	FindByEmail(ctx context.Context, userID, email string) (*model.Contact, error)
	FindAll(ctx context.Context, userID string) ([]*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, userID, id string) error
	// DetachCategory nulls the category reference on every contact in the
	// category; used when a category is deleted.
	DetachCategory(ctx context.Context, userID, categoryID string) error
	Reorder(ctx context.Context, userID string, ids []string) error
	MaxPosition(ctx context.Context, userID string) (int, error)
}

// SentMailRepository stores the read-mostly sent-mail log with its
// attachment child rows.
type SentMailRepository interface {
	Create(ctx context.Context, mail *model.SentMail) error
	FindByContactID(ctx context.Context, contactID string) ([]*model.SentMail, error)
	FindByGmailID(ctx context.Context, contactID, gmailID string) (*model.SentMail, error)
	DeleteByContactID(ctx context.Context, contactID string) error
}

// DraftRepository defines the interface for manual draft operations.
type DraftRepository interface {
	Create(ctx context.Context, draft *model.ManualDraft) error
	FindByID(ctx context.Context, userID, id string) (*model.ManualDraft, error)
	// FindAll returns drafts ordered by (contact id, position) with the
	// unplaced pool first.
	FindAll(ctx context.Context, userID string) ([]*model.ManualDraft, error)
	// FindByContactID lists one contact's drafts; a nil contactID selects
	// the unplaced pool.
	FindByContactID(ctx context.Context, userID string, contactID *string) ([]*model.ManualDraft, error)
	Update(ctx context.Context, draft *model.ManualDraft) error
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
	MaxUnplacedPosition(ctx context.Context, userID string) (int, error)
	// DetachContact moves a deleted contact's drafts back to the tail of
	// the unplaced pool.
	DetachContact(ctx context.Context, userID, contactID string) error
}
