package service

import (
	"context"

	"registrly/leads-service/internal/models"
)

// SearchStore is the persistence surface the services need. Satisfied by
// repository.SearchRepository; faked in tests.
type SearchStore interface {
	Create(ctx context.Context, search *models.Search) error
	FindByID(ctx context.Context, id string) (*models.Search, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
