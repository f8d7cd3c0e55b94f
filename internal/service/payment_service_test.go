package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
	"registrly/leads-service/pkg/logger"
)

func storedSearch() *models.Search {
	return &models.Search{
		ID:            "abc-123",
		Name:          "Ada",
		Email:         "ada@example.com",
		TrademarkName: "Lovelace Labs",
		Status:        models.SearchStatusCompleted,
	}
}

func TestPaymentService_CompletePayment(t *testing.T) {
	store := new(MockSearchStore)
	email := new(MockEmailChannel)

	store.On("UpdateStatus", mock.Anything, "abc-123", models.SearchStatusCompleted).Return(nil)
	store.On("FindByID", mock.Anything, "abc-123").Return(storedSearch(), nil)
	email.On("SendEmail", mock.Anything, mock.AnythingOfType("models.EmailPayload")).
		Return("receipt-id", nil)

	svc := NewPaymentService(store, email, logger.NewLogger("test"))
	err := svc.CompletePayment(context.Background(), "abc-123")

	require.NoError(t, err)
	store.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestPaymentService_CompletePaymentReceiptFailureIsNotFatal(t *testing.T) {
	store := new(MockSearchStore)
	email := new(MockEmailChannel)

	store.On("UpdateStatus", mock.Anything, "abc-123", models.SearchStatusCompleted).Return(nil)
	store.On("FindByID", mock.Anything, "abc-123").Return(storedSearch(), nil)
	email.On("SendEmail", mock.Anything, mock.AnythingOfType("models.EmailPayload")).
		Return("", errors.New("provider down"))

	svc := NewPaymentService(store, email, logger.NewLogger("test"))
	err := svc.CompletePayment(context.Background(), "abc-123")

	// Receipt delivery is best-effort once the payment is applied
	assert.NoError(t, err)
}

func TestPaymentService_CompletePaymentUnknownSearch(t *testing.T) {
	store := new(MockSearchStore)
	email := new(MockEmailChannel)

	store.On("UpdateStatus", mock.Anything, "ghost", models.SearchStatusCompleted).
		Return(errs.ErrSearchNotFound)

	svc := NewPaymentService(store, email, logger.NewLogger("test"))
	err := svc.CompletePayment(context.Background(), "ghost")

	assert.ErrorIs(t, err, errs.ErrSearchNotFound)
	email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestPaymentService_AbandonPayment(t *testing.T) {
	store := new(MockSearchStore)
	email := new(MockEmailChannel)

	store.On("UpdateStatus", mock.Anything, "abc-123", models.SearchStatusAbandoned).Return(nil)

	svc := NewPaymentService(store, email, logger.NewLogger("test"))
	err := svc.AbandonPayment(context.Background(), "abc-123")

	require.NoError(t, err)
	// Abandonment sends no email
	email.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}
