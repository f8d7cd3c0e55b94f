package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
	"registrly/leads-service/pkg/logger"
	"registrly/leads-service/pkg/metrics"
)

const (
	// maxSendAttempts caps attempts per recipient, including the first one.
	maxSendAttempts = 3
	// retryBackoffStep is the linear backoff increment: attempt n waits n*step.
	retryBackoffStep = 2 * time.Second
	// recipientGap is the fixed pause between recipients to stay under the
	// provider's throughput limit. Skipped before the first recipient.
	recipientGap = 1 * time.Second
)

// SleepFunc pauses for the given duration. Injected so tests can observe
// backoff behavior without wall-clock sleeps.
type SleepFunc func(time.Duration)

// CampaignInput is the validated input of one dispatch run.
type CampaignInput struct {
	Recipients []models.Recipient
	Subject    string
}

// Dispatcher sends a templated follow-up email to every recipient of a
// campaign, sequentially and in order. Individual failures never abort the
// batch; rate-limited sends are retried with linear backoff.
type Dispatcher struct {
	channel EmailChannel
	log     *logger.Logger
	metrics *metrics.Metrics
	sleep   SleepFunc

	maxAttempts int
	backoffStep time.Duration
	gap         time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSleepFunc replaces the wall-clock sleep, for deterministic tests.
func WithSleepFunc(sleep SleepFunc) DispatcherOption {
	return func(d *Dispatcher) { d.sleep = sleep }
}

// NewDispatcher creates a dispatcher backed by the provided email channel.
func NewDispatcher(channel EmailChannel, log *logger.Logger, m *metrics.Metrics, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		channel:     channel,
		log:         log,
		metrics:     m,
		sleep:       time.Sleep,
		maxAttempts: maxSendAttempts,
		backoffStep: retryBackoffStep,
		gap:         recipientGap,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes the campaign. It fails fast with a validation error for
// an empty recipient list or missing subject, before any provider call. Every
// other failure mode is recorded per recipient in the returned report.
func (d *Dispatcher) Dispatch(ctx context.Context, input CampaignInput) (*models.DispatchReport, error) {
	if len(input.Recipients) == 0 {
		return nil, errs.ErrEmptyRecipients
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, errs.ErrMissingSubject
	}

	report := &models.DispatchReport{
		TotalRecipients: len(input.Recipients),
		Results:         make([]models.SendOutcome, 0, len(input.Recipients)),
	}

	for i, recipient := range input.Recipients {
		if i > 0 {
			d.sleep(d.gap)
		}

		outcome := d.sendWithRetry(ctx, recipient, input.Subject)
		if outcome.Success {
			report.SuccessCount++
		} else {
			report.FailureCount++
		}
		report.Results = append(report.Results, outcome)
	}

	d.log.WithFields(map[string]interface{}{
		"total":     report.TotalRecipients,
		"delivered": report.SuccessCount,
		"failed":    report.FailureCount,
	}).Info("Campaign dispatch finished")

	return report, nil
}

// sendWithRetry attempts delivery to a single recipient, retrying only on
// rate-limit errors and only up to the attempt ceiling.
func (d *Dispatcher) sendWithRetry(ctx context.Context, recipient models.Recipient, subject string) models.SendOutcome {
	if strings.TrimSpace(recipient.Email) == "" {
		d.log.WithRecipient(recipient.ID, recipient.Email).Warn("Skipping recipient without email address")
		if d.metrics != nil {
			d.metrics.EmailsSent.WithLabelValues("skipped").Inc()
		}
		return models.SendOutcome{
			Email:   recipient.Email,
			Success: false,
			Error:   "missing email address",
		}
	}

	payload := buildFollowUpEmail(recipient, subject)

	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		emailID, err := d.channel.SendEmail(ctx, payload)
		if err == nil {
			if d.metrics != nil {
				d.metrics.EmailsSent.WithLabelValues("sent").Inc()
			}
			return models.SendOutcome{
				Email:   recipient.Email,
				Success: true,
				EmailID: emailID,
			}
		}

		lastErr = err
		if errors.Is(err, errs.ErrRateLimited) && attempt < d.maxAttempts {
			wait := time.Duration(attempt) * d.backoffStep
			d.log.WithRecipient(recipient.ID, recipient.Email).
				WithField("attempt", attempt).
				WithField("wait", wait.String()).
				Warn("Rate limited, retrying send")
			if d.metrics != nil {
				d.metrics.EmailRetries.Inc()
			}
			d.sleep(wait)
			continue
		}

		// Permanent error, or the retry ceiling is exhausted.
		break
	}

	d.log.WithRecipient(recipient.ID, recipient.Email).
		WithField("error", lastErr.Error()).
		Error("Failed to deliver campaign email")
	if d.metrics != nil {
		d.metrics.EmailsSent.WithLabelValues("failed").Inc()
	}

	return models.SendOutcome{
		Email:   recipient.Email,
		Success: false,
		Error:   lastErr.Error(),
	}
}
