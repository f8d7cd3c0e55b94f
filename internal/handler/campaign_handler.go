package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
	"registrly/leads-service/internal/service"
	"registrly/leads-service/pkg/helpers"
	"registrly/leads-service/pkg/logger"
)

// CampaignHandler exposes the bulk follow-up campaign endpoint.
type CampaignHandler struct {
	dispatcher *service.Dispatcher
	log        *logger.Logger
}

// NewCampaignHandler creates a campaign handler.
func NewCampaignHandler(dispatcher *service.Dispatcher, log *logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

type followUpRequest struct {
	Recipients []models.Recipient `json:"recipients"`
	Subject    string             `json:"subject"`
}

type followUpResponse struct {
	Success         bool                 `json:"success"`
	SuccessCount    int                  `json:"successCount"`
	FailureCount    int                  `json:"failureCount"`
	TotalRecipients int                  `json:"totalRecipients"`
	Results         []models.SendOutcome `json:"results"`
}

// SendFollowUps handles POST /api/campaigns/followup.
// Per-recipient failures are reported in the body with HTTP 200; only
// malformed input produces an error status.
func (h *CampaignHandler) SendFollowUps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req followUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteValidationErrorResponseFromString(w, "invalid JSON body")
		return
	}

	report, err := h.dispatcher.Dispatch(r.Context(), service.CampaignInput{
		Recipients: req.Recipients,
		Subject:    req.Subject,
	})
	if err != nil {
		if errors.Is(err, errs.ErrEmptyRecipients) || errors.Is(err, errs.ErrMissingSubject) {
			helpers.WriteValidationErrorResponseFromString(w, err.Error())
			return
		}
		h.log.WithField("error", err.Error()).Error("Campaign dispatch failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, followUpResponse{
		Success:         true,
		SuccessCount:    report.SuccessCount,
		FailureCount:    report.FailureCount,
		TotalRecipients: report.TotalRecipients,
		Results:         report.Results,
	})
}
