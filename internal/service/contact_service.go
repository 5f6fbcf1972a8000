package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"touchbase/internal/csvio"
	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
)

type contactService struct {
	contactRepo  repository.ContactRepository
	categoryRepo repository.CategoryRepository
	sentMailRepo repository.SentMailRepository
	draftRepo    repository.DraftRepository
	logger       *logger.Logger
}

func NewContactService(
	contactRepo repository.ContactRepository,
	categoryRepo repository.CategoryRepository,
	sentMailRepo repository.SentMailRepository,
	draftRepo repository.DraftRepository,
	logger *logger.Logger,
) ContactService {
	return &contactService{
		contactRepo:  contactRepo,
		categoryRepo: categoryRepo,
		sentMailRepo: sentMailRepo,
		draftRepo:    draftRepo,
		logger:       logger,
	}
}

func (s *contactService) Create(ctx context.Context, userID, name, email string, categoryID *string) (*model.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if !csvio.ValidEmail(email) {
		return nil, fmt.Errorf("%w: malformed email %q", ErrValidation, email)
	}
	categoryID, err := s.resolveCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	max, err := s.contactRepo.MaxPosition(ctx, userID)
	if err != nil {
		return nil, err
	}

	contact := model.NewContact(userID, name, email, categoryID, max+1)
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	s.logger.Info("Created contact:", contact.ID)
	return contact, nil
}

// resolveCategory validates a category reference against the owner. An empty
// id normalizes to nil ("uncategorized").
func (s *contactService) resolveCategory(ctx context.Context, userID string, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, userID, *categoryID); err != nil {
		return nil, err
	}
	return categoryID, nil
}

func (s *contactService) List(ctx context.Context, userID string) ([]*model.Contact, error) {
	return s.contactRepo.FindAll(ctx, userID)
}

func (s *contactService) Update(ctx context.Context, userID, id string, patch ContactPatch) (*model.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		contact.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if !csvio.ValidEmail(email) {
			return nil, fmt.Errorf("%w: malformed email %q", ErrValidation, email)
		}
		contact.Email = email
	}
	if patch.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, userID, patch.CategoryID)
		if err != nil {
			return nil, err
		}
		contact.CategoryID = categoryID
	}
	if patch.Position != nil {
		contact.Position = *patch.Position
	}
	if patch.LastSentAt != nil {
		if *patch.LastSentAt == "" {
			contact.LastSentAt = nil
		} else {
			sentAt, err := time.Parse(time.RFC3339, *patch.LastSentAt)
			if err != nil {
				return nil, fmt.Errorf("%w: lastSentAt must be RFC 3339", ErrValidation)
			}
			contact.LastSentAt = &sentAt
		}
	}
	contact.UpdatedAt = time.Now()

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, userID, id string) error {
	contact, err := s.contactRepo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	// Drafts outlive their contact: back to the unplaced pool.
	if err := s.draftRepo.DetachContact(ctx, userID, contact.ID); err != nil {
		s.logger.Error("Failed to detach drafts:", err)
		return err
	}
	if err := s.sentMailRepo.DeleteByContactID(ctx, contact.ID); err != nil {
		s.logger.Error("Failed to delete sent mail:", err)
		return err
	}
	if err := s.contactRepo.Delete(ctx, userID, contact.ID); err != nil {
		return err
	}
	s.logger.Info("Deleted contact:", contact.ID)
	return nil
}

func (s *contactService) Reorder(ctx context.Context, userID string, ids []string) error {
	return s.contactRepo.Reorder(ctx, userID, ids)
}

func (s *contactService) AssignCategory(ctx context.Context, userID, contactID string, categoryID *string) (*model.Contact, error) {
	if categoryID == nil {
		empty := ""
		categoryID = &empty
	}
	return s.Update(ctx, userID, contactID, ContactPatch{CategoryID: categoryID})
}

func (s *contactService) BulkUpsert(ctx context.Context, userID string, rows []BulkContact) ([]*model.Contact, []RowError, error) {
	var contacts []*model.Contact
	var rowErrors []RowError

	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		email := strings.TrimSpace(row.Email)
		if !csvio.ValidEmail(email) {
			rowErrors = append(rowErrors, RowError{Line: line, Email: email, Reason: "invalid email address"})
			continue
		}

		existing, err := s.contactRepo.FindByEmail(ctx, userID, email)
		if err == nil {
			patch := ContactPatch{CategoryID: row.CategoryID}
			if row.Name != "" {
				patch.Name = &row.Name
			}
			updated, err := s.Update(ctx, userID, existing.ID, patch)
			if err != nil {
				rowErrors = append(rowErrors, RowError{Line: line, Email: email, Reason: err.Error()})
				continue
			}
			contacts = append(contacts, updated)
			continue
		}

		name := row.Name
		if name == "" {
			name = email
		}
		created, err := s.Create(ctx, userID, name, email, row.CategoryID)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Email: email, Reason: err.Error()})
			continue
		}
		contacts = append(contacts, created)
	}
	return contacts, rowErrors, nil
}

func (s *contactService) ImportCSV(ctx context.Context, userID, text string) ([]*model.Contact, []RowError, error) {
	rows := csvio.Parse(text)

	var valid []BulkContact
	var rowErrors []RowError
	for _, row := range rows {
		if !csvio.ValidEmail(row.Email) {
			rowErrors = append(rowErrors, RowError{Line: row.Line, Email: row.Email, Reason: "invalid email address"})
			continue
		}
		valid = append(valid, BulkContact{Name: row.Name, Email: row.Email, Line: row.Line})
	}

	contacts, bulkErrors, err := s.BulkUpsert(ctx, userID, valid)
	if err != nil {
		return nil, nil, err
	}
	rowErrors = append(rowErrors, bulkErrors...)
	s.logger.Info("Imported", len(contacts), "contacts,", len(rowErrors), "rows rejected")
	return contacts, rowErrors, nil
}

func (s *contactService) ExportCSV(ctx context.Context, userID string) (string, error) {
	contacts, err := s.contactRepo.FindAll(ctx, userID)
	if err != nil {
		return "", err
	}
	categories, err := s.categoryRepo.FindAll(ctx, userID)
	if err != nil {
		return "", err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := make([]csvio.ExportRow, 0, len(contacts))
	for _, c := range contacts {
		category := ""
		if c.CategoryID != nil {
			category = names[*c.CategoryID]
		}
		rows = append(rows, csvio.ExportRow{Name: c.Name, Email: c.Email, Category: category})
	}
	return csvio.Export(rows), nil
}
