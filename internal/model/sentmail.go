package model

import (
	"time"

	"github.com/google/uuid"
)

// SentMail records one outbound message to a contact. Rows are read-mostly:
// the sync job inserts them and the dashboard reads them back.
type SentMail struct {
	ID          string        `json:"id"`
	ContactID   string        `json:"contactId"`
	GmailID     string        `json:"gmailId"`
	Subject     string        `json:"subject"`
	Note        string        `json:"note"`
	Status      string        `json:"status"`
	SentAt      time.Time     `json:"sentAt"`
	Attachments []*Attachment `json:"attachments"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Attachment is an immutable child record holding metadata only; the bytes
// stay with the mail provider.
type Attachment struct {
	ID         string `json:"id"`
	SentMailID string `json:"sentMailId"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
}

func NewSentMail(contactID, gmailID, subject string, sentAt time.Time) *SentMail {
	return &SentMail{
		ID:        uuid.New().String(),
		ContactID: contactID,
		GmailID:   gmailID,
		Subject:   subject,
		SentAt:    sentAt,
		CreatedAt: time.Now(),
	}
}

func NewAttachment(sentMailID, filename, mimeType string, size int64) *Attachment {
	return &Attachment{
		ID:         uuid.New().String(),
		SentMailID: sentMailID,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       size,
	}
}

// SentMessage is a message as fetched from the mail provider, before it is
// matched to a contact and persisted.
type SentMessage struct {
	GmailID     string
	To          []string
	Subject     string
	SentAt      time.Time
	Attachments []*Attachment
}
