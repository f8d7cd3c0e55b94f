package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrly/leads-service/pkg/logger"
)

const testWebhookSecret = "whsec_test_secret"

// fakePaymentService records applied transitions.
type fakePaymentService struct {
	completed []string
	abandoned []string
	err       error
}

func (f *fakePaymentService) CompletePayment(ctx context.Context, searchID string) error {
	f.completed = append(f.completed, searchID)
	return f.err
}

func (f *fakePaymentService) AbandonPayment(ctx context.Context, searchID string) error {
	f.abandoned = append(f.abandoned, searchID)
	return f.err
}

// signPayload produces a valid Stripe-Signature header for the payload.
func signPayload(payload string, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutEvent(eventType, searchID string) string {
	return fmt.Sprintf(`{
		"id": "evt_1",
		"type": "%s",
		"data": {
			"object": {
				"id": "cs_1",
				"object": "checkout.session",
				"client_reference_id": "%s"
			}
		}
	}`, eventType, searchID)
}

func postWebhook(t *testing.T, h *WebhookHandler, payload, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	rec := httptest.NewRecorder()
	h.HandlePaymentEvent(rec, req)
	return rec
}

func TestWebhookCompletedSession(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewWebhookHandler(svc, testWebhookSecret, logger.NewLogger("test"))

	payload := checkoutEvent("checkout.session.completed", "abc-123")
	rec := postWebhook(t, h, payload, signPayload(payload, testWebhookSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc-123"}, svc.completed)
	assert.Empty(t, svc.abandoned)
}

func TestWebhookExpiredSession(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewWebhookHandler(svc, testWebhookSecret, logger.NewLogger("test"))

	payload := checkoutEvent("checkout.session.expired", "abc-123")
	rec := postWebhook(t, h, payload, signPayload(payload, testWebhookSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc-123"}, svc.abandoned)
}

func TestWebhookInvalidSignature(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewWebhookHandler(svc, testWebhookSecret, logger.NewLogger("test"))

	payload := checkoutEvent("checkout.session.completed", "abc-123")
	rec := postWebhook(t, h, payload, signPayload(payload, "whsec_wrong_secret"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.completed)
}

func TestWebhookUnknownEventAcknowledged(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewWebhookHandler(svc, testWebhookSecret, logger.NewLogger("test"))

	payload := `{"id": "evt_2", "type": "invoice.created", "data": {"object": {}}}`
	rec := postWebhook(t, h, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.completed)
	assert.Empty(t, svc.abandoned)
}

func TestWebhookSessionWithoutReference(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewWebhookHandler(svc, testWebhookSecret, logger.NewLogger("test"))

	payload := checkoutEvent("checkout.session.completed", "")
	rec := postWebhook(t, h, payload, signPayload(payload, testWebhookSecret))

	// Acknowledged so the gateway stops retrying, but nothing applied
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.completed)
}
