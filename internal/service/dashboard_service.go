package service

import (
	"context"
	"time"

	"touchbase/internal/dragdrop"
	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
	"touchbase/internal/staleness"
)

type dashboardService struct {
	contactRepo  repository.ContactRepository
	categoryRepo repository.CategoryRepository
	sentMailRepo repository.SentMailRepository
	draftRepo    repository.DraftRepository
	logger       *logger.Logger
}

func NewDashboardService(
	contactRepo repository.ContactRepository,
	categoryRepo repository.CategoryRepository,
	sentMailRepo repository.SentMailRepository,
	draftRepo repository.DraftRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		contactRepo:  contactRepo,
		categoryRepo: categoryRepo,
		sentMailRepo: sentMailRepo,
		draftRepo:    draftRepo,
		logger:       logger,
	}
}

func (s *dashboardService) Build(ctx context.Context, user *model.User) (*Dashboard, error) {
	categories, err := s.categoryRepo.FindAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.FindAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	drafts, err := s.draftRepo.FindAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	draftsByContact := make(map[string][]*model.ManualDraft)
	var unplaced []*model.ManualDraft
	for _, d := range drafts {
		if d.ContactID == nil {
			unplaced = append(unplaced, d)
		} else {
			draftsByContact[*d.ContactID] = append(draftsByContact[*d.ContactID], d)
		}
	}

	now := time.Now()
	threshold := user.StaleThresholdDays
	out := make([]*DashboardContact, 0, len(contacts))
	for _, c := range contacts {
		mails, err := s.sentMailRepo.FindByContactID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &DashboardContact{
			Contact:   c,
			Staleness: staleness.Classify(c.LastSentAt, threshold, now),
			SentMail:  mails,
			Drafts:    draftsByContact[c.ID],
		})
	}

	return &Dashboard{
		Categories:         categories,
		Contacts:           out,
		UnplacedDrafts:     unplaced,
		StaleThresholdDays: threshold,
	}, nil
}

func (s *dashboardService) MoveMail(ctx context.Context, userID, contactID, mailID string, toIndex int) ([]string, error) {
	if _, err := s.contactRepo.FindByID(ctx, userID, contactID); err != nil {
		return nil, err
	}
	mails, err := s.sentMailRepo.FindByContactID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(mails))
	for i, m := range mails {
		ids[i] = m.ID
	}
	from := dragdrop.IndexOf(ids, mailID)
	if from < 0 {
		return nil, repository.ErrNotFound
	}
	return dragdrop.Move(ids, from, toIndex), nil
}
