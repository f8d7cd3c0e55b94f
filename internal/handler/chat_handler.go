package handler

import (
	"encoding/json"
	"net/http"

	"registrly/leads-service/internal/models"
	"registrly/leads-service/internal/service"
	"registrly/leads-service/pkg/logger"
)

// ChatHandler exposes the support assistant endpoint.
type ChatHandler struct {
	service service.ChatService
	log     *logger.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(svc service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		log:     log,
	}
}

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	reply, err := h.service.Reply(r.Context(), req.Messages)
	if err != nil {
		h.log.WithField("error", err.Error()).Error("Chat reply failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
