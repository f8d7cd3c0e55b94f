package service

import (
	"context"

	"registrly/leads-service/internal/models"
)

// EmailChannel abstracts email delivery providers. Implementations must wrap
// provider rate-limit failures in errs.ErrRateLimited so callers can
// distinguish transient errors from permanent delivery failures.
type EmailChannel interface {
	SendEmail(ctx context.Context, payload models.EmailPayload) (string, error)
}
