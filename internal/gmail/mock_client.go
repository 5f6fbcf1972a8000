package gmail

import (
	"context"

	"touchbase/internal/model"
)

// MockMailClient implements service.MailClient for tests and local
// development without Gmail credentials.
type MockMailClient struct {
	Messages []*model.SentMessage
	Err      error
	Calls    int
}

func (m *MockMailClient) ListSentMessages(ctx context.Context, userID string, maxResults int64) ([]*model.SentMessage, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if int64(len(m.Messages)) > maxResults {
		return m.Messages[:maxResults], nil
	}
	return m.Messages, nil
}
