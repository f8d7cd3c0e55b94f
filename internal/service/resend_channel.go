package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
)

type resendEmailChannel struct {
	client *resend.Client
	from   string
}

// NewResendEmailChannel creates an email channel backed by the Resend API.
// The from address is rendered as "Name <address>" when a name is given.
func NewResendEmailChannel(apiKey, fromAddress, fromName string) EmailChannel {
	from := fromAddress
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromAddress)
	}
	return &resendEmailChannel{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (c *resendEmailChannel) SendEmail(ctx context.Context, payload models.EmailPayload) (string, error) {
	if payload.To == "" {
		return "", fmt.Errorf("to address is required")
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{payload.To},
		Subject: payload.Subject,
		Html:    payload.HTMLBody,
		Text:    payload.Body,
		Headers: payload.Headers,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isRateLimitError(err) {
			return "", fmt.Errorf("%w: %v", errs.ErrRateLimited, err)
		}
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// isRateLimitError classifies provider errors. Resend signals throttling with
// HTTP 429 and the rate_limit_exceeded error code; the SDK surfaces both in
// the error text.
func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "429")
}
