package gmail

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"touchbase/internal/logger"
	"touchbase/internal/model"
)

// Client reads the SENT label of one authenticated mailbox.
type Client struct {
	svc    *gmail.Service
	logger *logger.Logger
}

func NewClient(accessToken string, logger *logger.Logger) (*Client, error) {
	httpClient := &http.Client{
		Transport: &oauth2Transport{token: accessToken},
	}

	svc, err := gmail.NewService(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{svc: svc, logger: logger}, nil
}

type oauth2Transport struct {
	token string
}

func (t *oauth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// ListSentMessages fetches the most recent sent messages with recipient,
// subject and attachment metadata. Message bodies are never downloaded past
// the structure needed to enumerate attachments.
func (c *Client) ListSentMessages(ctx context.Context, maxResults int64) ([]*model.SentMessage, error) {
	list, err := c.svc.Users.Messages.List("me").
		LabelIds("SENT").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list sent messages: %w", err)
	}

	var messages []*model.SentMessage
	for _, ref := range list.Messages {
		msg, err := c.svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			c.logger.Error("Failed to get message:", ref.Id, err)
			continue
		}

		out := &model.SentMessage{
			GmailID: msg.Id,
			SentAt:  time.Unix(msg.InternalDate/1000, 0),
		}
		for _, header := range msg.Payload.Headers {
			switch header.Name {
			case "Subject":
				out.Subject = header.Value
			case "To":
				out.To = parseAddresses(header.Value)
			}
		}
		collectAttachments(msg.Payload, out)
		messages = append(messages, out)
	}

	c.logger.Info("Fetched", len(messages), "sent messages from Gmail")
	return messages, nil
}

// parseAddresses extracts bare addresses from a To header, tolerating
// display names and malformed entries.
func parseAddresses(header string) []string {
	if addrs, err := mail.ParseAddressList(header); err == nil {
		out := make([]string, 0, len(addrs))
		for _, a := range addrs {
			out = append(out, strings.ToLower(a.Address))
		}
		return out
	}

	// Fallback for headers net/mail rejects: naive comma split.
	var out []string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if i := strings.LastIndex(part, "<"); i >= 0 {
			part = strings.Trim(part[i+1:], "<> ")
		}
		if part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

func collectAttachments(part *gmail.MessagePart, out *model.SentMessage) {
	if part == nil {
		return
	}
	if part.Filename != "" && part.Body != nil {
		out.Attachments = append(out.Attachments, &model.Attachment{
			Filename: part.Filename,
			MimeType: part.MimeType,
			Size:     part.Body.Size,
		})
	}
	for _, child := range part.Parts {
		collectAttachments(child, out)
	}
}
