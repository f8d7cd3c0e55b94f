package service

import (
	"context"
	"errors"
	"fmt"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
	"registrly/leads-service/pkg/logger"
)

// PaymentService applies payment gateway events to search records.
type PaymentService interface {
	CompletePayment(ctx context.Context, searchID string) error
	AbandonPayment(ctx context.Context, searchID string) error
}

type paymentService struct {
	repo    SearchStore
	channel EmailChannel
	log     *logger.Logger
}

// NewPaymentService creates a payment service implementation.
func NewPaymentService(repo SearchStore, channel EmailChannel, log *logger.Logger) PaymentService {
	return &paymentService{
		repo:    repo,
		channel: channel,
		log:     log,
	}
}

// CompletePayment marks the search record completed and sends the receipt
// email. The receipt is best-effort: a delivery failure is logged but does
// not fail the webhook, since the gateway would otherwise keep retrying an
// already-applied payment.
func (s *paymentService) CompletePayment(ctx context.Context, searchID string) error {
	if err := s.repo.UpdateStatus(ctx, searchID, models.SearchStatusCompleted); err != nil {
		if errors.Is(err, errs.ErrSearchNotFound) {
			return err
		}
		return fmt.Errorf("failed to complete payment for search %s: %w", searchID, err)
	}

	search, err := s.repo.FindByID(ctx, searchID)
	if err != nil {
		s.log.WithLeadID(searchID).WithField("error", err.Error()).
			Error("Payment applied but search could not be loaded for receipt email")
		return nil
	}

	if _, err := s.channel.SendEmail(ctx, buildReceiptEmail(search)); err != nil {
		s.log.WithLeadID(searchID).WithField("error", err.Error()).
			Error("Payment applied but receipt email failed")
	}

	s.log.WithLeadID(searchID).Info("Payment completed")

	return nil
}

// AbandonPayment marks the search record abandoned.
func (s *paymentService) AbandonPayment(ctx context.Context, searchID string) error {
	if err := s.repo.UpdateStatus(ctx, searchID, models.SearchStatusAbandoned); err != nil {
		if errors.Is(err, errs.ErrSearchNotFound) {
			return err
		}
		return fmt.Errorf("failed to abandon payment for search %s: %w", searchID, err)
	}

	s.log.WithLeadID(searchID).Info("Payment abandoned")

	return nil
}
