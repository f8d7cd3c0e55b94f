package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/service"
	"registrly/leads-service/pkg/helpers"
	"registrly/leads-service/pkg/logger"
)

// LeadHandler exposes lead intake endpoints.
type LeadHandler struct {
	service   service.LeadService
	validator *helpers.CustomValidator
	log       *logger.Logger
}

// NewLeadHandler creates a lead handler.
func NewLeadHandler(svc service.LeadService, validator *helpers.CustomValidator, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		service:   svc,
		validator: validator,
		log:       log,
	}
}

type createLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	EmailID string `json:"emailId,omitempty"`
	// Persisted is false when the record could not be stored; the
	// confirmation email was still sent.
	Persisted bool `json:"persisted"`
}

// CreateLead handles POST /api/leads.
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input service.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validator.Validate(input); err != nil {
		helpers.WriteValidationErrorResponse(w, err)
		return
	}

	result, err := h.service.CreateLead(r.Context(), input)
	if err != nil {
		h.log.WithField("error", err.Error()).Error("Lead intake failed")
		writeError(w, http.StatusInternalServerError, "failed to process lead")
		return
	}

	writeJSON(w, http.StatusCreated, createLeadResponse{
		Success:   true,
		ID:        result.Search.ID,
		EmailID:   result.EmailID,
		Persisted: result.Persisted,
	})
}

// GetLead handles GET /api/leads/{id}.
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/leads/")
	if id == "" || id == r.URL.Path || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "lead ID is required")
		return
	}

	search, err := h.service.GetLead(r.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrSearchNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		h.log.WithField("error", err.Error()).Error("Failed to load lead")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, search)
}
