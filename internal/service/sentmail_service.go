package service

import (
	"context"
	"errors"
	"strings"

	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
)

type sentMailService struct {
	sentMailRepo repository.SentMailRepository
	contactRepo  repository.ContactRepository
	mailClient   MailClient
	maxMessages  int64
	logger       *logger.Logger
}

func NewSentMailService(
	sentMailRepo repository.SentMailRepository,
	contactRepo repository.ContactRepository,
	mailClient MailClient,
	maxMessages int64,
	logger *logger.Logger,
) SentMailService {
	return &sentMailService{
		sentMailRepo: sentMailRepo,
		contactRepo:  contactRepo,
		mailClient:   mailClient,
		maxMessages:  maxMessages,
		logger:       logger,
	}
}

func (s *sentMailService) Sync(ctx context.Context, user *model.User) (int, error) {
	messages, err := s.mailClient.ListSentMessages(ctx, user.ID, s.maxMessages)
	if err != nil {
		return 0, err
	}

	contacts, err := s.contactRepo.FindAll(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	byEmail := make(map[string]*model.Contact, len(contacts))
	for _, c := range contacts {
		byEmail[strings.ToLower(c.Email)] = c
	}

	added := 0
	for _, msg := range messages {
		for _, addr := range msg.To {
			contact, ok := byEmail[strings.ToLower(addr)]
			if !ok {
				continue
			}

			if _, err := s.sentMailRepo.FindByGmailID(ctx, contact.ID, msg.GmailID); err == nil {
				continue
			} else if !errors.Is(err, repository.ErrNotFound) {
				return added, err
			}

			mail := model.NewSentMail(contact.ID, msg.GmailID, msg.Subject, msg.SentAt)
			mail.Status = "synced"
			for _, a := range msg.Attachments {
				mail.Attachments = append(mail.Attachments,
					model.NewAttachment(mail.ID, a.Filename, a.MimeType, a.Size))
			}
			if err := s.sentMailRepo.Create(ctx, mail); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					continue
				}
				return added, err
			}
			added++

			if contact.LastSentAt == nil || msg.SentAt.After(*contact.LastSentAt) {
				sentAt := msg.SentAt
				contact.LastSentAt = &sentAt
				if err := s.contactRepo.Update(ctx, contact); err != nil {
					s.logger.Error("Failed to advance lastSentAt:", err)
				}
			}
		}
	}

	s.logger.Info("Synced", added, "sent messages for user", user.ID)
	return added, nil
}
