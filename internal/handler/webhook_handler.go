package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/service"
	"registrly/leads-service/pkg/logger"
)

// Stripe caps webhook payloads at 64KB; anything larger is not ours.
const maxWebhookBodyBytes = 65536

// WebhookHandler processes payment gateway callbacks.
type WebhookHandler struct {
	service       service.PaymentService
	webhookSecret string
	log           *logger.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(svc service.PaymentService, webhookSecret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service:       svc,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// HandlePaymentEvent handles POST /api/webhooks/payment. Signature
// verification is delegated to the Stripe SDK. Unknown event types are
// acknowledged so the gateway stops retrying them.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// Signature is still verified; the API version pin is relaxed so events
	// keep flowing across gateway API upgrades.
	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		h.log.WithField("error", err.Error()).Warn("Rejected webhook with invalid signature")
		writeError(w, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.applySession(w, r, event, true)
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		h.applySession(w, r, event, false)
	default:
		h.log.WithField("event_type", string(event.Type)).Debug("Ignoring unhandled webhook event")
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}

// applySession resolves the search record referenced by the checkout session
// and transitions it.
func (h *WebhookHandler) applySession(w http.ResponseWriter, r *http.Request, event stripe.Event, completed bool) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		h.log.WithField("error", err.Error()).Error("Failed to parse checkout session")
		writeError(w, http.StatusBadRequest, "malformed event payload")
		return
	}

	searchID := session.ClientReferenceID
	if searchID == "" {
		searchID = session.Metadata["search_id"]
	}
	if searchID == "" {
		// Nothing to correlate against; acknowledge so the gateway moves on.
		h.log.WithField("event_id", event.ID).Warn("Checkout session without search reference")
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	var err error
	if completed {
		err = h.service.CompletePayment(r.Context(), searchID)
	} else {
		err = h.service.AbandonPayment(r.Context(), searchID)
	}
	if err != nil {
		if errors.Is(err, errs.ErrSearchNotFound) {
			h.log.WithLeadID(searchID).Warn("Webhook referenced unknown search record")
			writeJSON(w, http.StatusOK, map[string]bool{"received": true})
			return
		}
		h.log.WithLeadID(searchID).WithField("error", err.Error()).Error("Failed to apply payment event")
		writeError(w, http.StatusInternalServerError, "failed to process event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
