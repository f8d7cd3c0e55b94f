package service

import (
	"context"
	"strings"

	"registrly/leads-service/internal/models"
	"registrly/leads-service/pkg/logger"
)

// Completer abstracts the chat completion capability. Satisfied by
// assistant.Client; faked in tests.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// ChatService answers visitor questions, falling back to a canned-response
// table when the completion capability is unavailable.
type ChatService interface {
	Reply(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error)
}

type chatService struct {
	completer Completer
	log       *logger.Logger
}

// NewChatService creates a chat service implementation.
func NewChatService(completer Completer, log *logger.Logger) ChatService {
	return &chatService{
		completer: completer,
		log:       log,
	}
}

// Reply asks the completion API for an answer. Any failure (missing
// credentials, transport error, API error) degrades to the canned table,
// never to an error response.
func (s *chatService) Reply(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error) {
	if s.completer != nil && s.completer.Configured() {
		answer, err := s.completer.Complete(ctx, messages)
		if err == nil {
			return &models.ChatReply{Message: answer, Fallback: false}, nil
		}
		s.log.WithField("error", err.Error()).Warn("Completion API unavailable, using canned response")
	}

	return &models.ChatReply{
		Message:  cannedResponse(lastUserMessage(messages)),
		Fallback: true,
	}, nil
}

// lastUserMessage returns the content of the most recent user turn.
func lastUserMessage(messages []models.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.ChatRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// cannedEntry pairs trigger keywords with a fixed reply.
type cannedEntry struct {
	keywords []string
	reply    string
}

var cannedTable = []cannedEntry{
	{
		keywords: []string{"price", "pricing", "cost", "fee", "how much"},
		reply:    "Our trademark registration packages start at $299 plus government fees. The free search you can request on our site tells you exactly which package fits your mark.",
	},
	{
		keywords: []string{"how long", "timeline", "duration", "take"},
		reply:    "A trademark search is usually ready within 24 hours. Registration itself typically takes 6 to 12 months depending on the trademark office workload.",
	},
	{
		keywords: []string{"search", "available", "availability", "check"},
		reply:    "You can request a free trademark search on our site. Fill in the form with your mark and we will email you the availability results.",
	},
	{
		keywords: []string{"status", "progress", "my application", "my trademark"},
		reply:    "To check the status of your application, reply to the confirmation email you received or contact our support team with your reference number.",
	},
	{
		keywords: []string{"refund", "cancel", "money back"},
		reply:    "If the trademark office refuses your application for reasons we should have caught in the search, we refund our service fee in full.",
	},
	{
		keywords: []string{"country", "countries", "international", "abroad"},
		reply:    "We file trademarks in over 150 countries. Start with a free search and tell us which markets matter to you.",
	},
}

// defaultCannedReply is used when no keyword matches.
const defaultCannedReply = "Thanks for reaching out! Our assistant is briefly unavailable. For trademark questions, request a free search on our site or email our support team and we will get back to you within one business day."

// cannedResponse picks the first entry whose keyword appears in the message.
func cannedResponse(message string) string {
	lower := strings.ToLower(message)
	for _, entry := range cannedTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.reply
			}
		}
	}
	return defaultCannedReply
}
