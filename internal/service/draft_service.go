package service

import (
	"context"

	"touchbase/internal/dragdrop"
	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
)

type draftService struct {
	draftRepo   repository.DraftRepository
	contactRepo repository.ContactRepository
	logger      *logger.Logger
}

func NewDraftService(draftRepo repository.DraftRepository, contactRepo repository.ContactRepository, logger *logger.Logger) DraftService {
	return &draftService{
		draftRepo:   draftRepo,
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (s *draftService) Create(ctx context.Context, userID, note string) (*model.ManualDraft, error) {
	max, err := s.draftRepo.MaxUnplacedPosition(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft := model.NewManualDraft(userID, note, max+1)
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	s.logger.Info("Created draft:", draft.ID)
	return draft, nil
}

func (s *draftService) List(ctx context.Context, userID string) ([]*model.ManualDraft, error) {
	return s.draftRepo.FindAll(ctx, userID)
}

func (s *draftService) Update(ctx context.Context, userID, id string, patch DraftPatch) (*model.ManualDraft, error) {
	draft, err := s.draftRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Note != nil {
		draft.Note = *patch.Note
	}
	if patch.ContactID != nil {
		if *patch.ContactID == "" {
			// Back to the unplaced pool, appended at the tail.
			if draft.ContactID != nil {
				max, err := s.draftRepo.MaxUnplacedPosition(ctx, userID)
				if err != nil {
					return nil, err
				}
				draft.ContactID = nil
				draft.Position = max + 1
			}
		} else {
			if _, err := s.contactRepo.FindByID(ctx, userID, *patch.ContactID); err != nil {
				return nil, err
			}
			if draft.ContactID == nil || *draft.ContactID != *patch.ContactID {
				siblings, err := s.draftRepo.FindByContactID(ctx, userID, patch.ContactID)
				if err != nil {
					return nil, err
				}
				draft.Position = len(siblings)
			}
			draft.ContactID = patch.ContactID
		}
	}
	if patch.Position != nil {
		draft.Position = *patch.Position
	}

	if err := s.draftRepo.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *draftService) Delete(ctx context.Context, userID, id string) error {
	return s.draftRepo.Delete(ctx, userID, id)
}

func (s *draftService) Reorder(ctx context.Context, userID string, ids []string) error {
	return s.draftRepo.Reorder(ctx, userID, ids)
}

func (s *draftService) Place(ctx context.Context, userID, draftID, contactID string, toIndex *int) (*model.ManualDraft, error) {
	draft, err := s.draftRepo.FindByID(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	if _, err := s.contactRepo.FindByID(ctx, userID, contactID); err != nil {
		return nil, err
	}

	siblings, err := s.draftRepo.FindByContactID(ctx, userID, &contactID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(siblings)+1)
	for _, d := range siblings {
		if d.ID != draftID {
			ids = append(ids, d.ID)
		}
	}

	target := len(ids)
	if toIndex != nil {
		target = *toIndex
	}
	ids = append(ids, draftID)
	ids = dragdrop.Move(ids, len(ids)-1, target)

	draft.ContactID = &contactID
	if err := s.draftRepo.Update(ctx, draft); err != nil {
		return nil, err
	}
	// Renumber the whole sibling group so positions stay contiguous.
	if err := s.draftRepo.Reorder(ctx, userID, ids); err != nil {
		return nil, err
	}
	return s.draftRepo.FindByID(ctx, userID, draftID)
}
