package service

import (
	"context"
	"fmt"

	"registrly/leads-service/internal/models"
	"registrly/leads-service/pkg/logger"
)

// LeadInput is the validated payload of a lead intake request.
type LeadInput struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"phone"`
	TrademarkName string `json:"trademarkName" validate:"required,trademark_name,max=255"`
	Description   string `json:"description" validate:"max=2000"`
}

// LeadService encapsulates business logic for trademark search leads.
type LeadService interface {
	CreateLead(ctx context.Context, input LeadInput) (*models.IntakeResult, error)
	GetLead(ctx context.Context, id string) (*models.Search, error)
}

type leadService struct {
	repo    SearchStore
	channel EmailChannel
	log     *logger.Logger
}

// NewLeadService creates a lead service implementation.
func NewLeadService(repo SearchStore, channel EmailChannel, log *logger.Logger) LeadService {
	return &leadService{
		repo:    repo,
		channel: channel,
		log:     log,
	}
}

// CreateLead persists the search record and sends the confirmation email.
// Persistence is best-effort: a database failure is logged and reported as an
// advisory outcome but never blocks the confirmation email. Only a failed
// email send fails the intake.
func (s *leadService) CreateLead(ctx context.Context, input LeadInput) (*models.IntakeResult, error) {
	search := &models.Search{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		TrademarkName: input.TrademarkName,
		Description:   input.Description,
		Status:        models.SearchStatusPending,
	}

	result := &models.IntakeResult{
		Search:    search,
		Persisted: true,
	}

	if err := s.repo.Create(ctx, search); err != nil {
		s.log.WithField("error", err.Error()).Error("Failed to persist search record, continuing with email")
		result.Persisted = false
		result.PersistError = err.Error()
	}

	emailID, err := s.channel.SendEmail(ctx, buildConfirmationEmail(search))
	if err != nil {
		return nil, fmt.Errorf("failed to send confirmation email: %w", err)
	}
	result.EmailID = emailID

	s.log.WithLeadID(search.ID).Info("Lead intake completed")

	return result, nil
}

func (s *leadService) GetLead(ctx context.Context, id string) (*models.Search, error) {
	return s.repo.FindByID(ctx, id)
}
