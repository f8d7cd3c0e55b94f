package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
)

// SearchRepository handles database interactions for search records.
type SearchRepository struct {
	db *sql.DB
}

// NewSearchRepository creates a new repository instance.
func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{
		db: db,
	}
}

// Create persists a search record. A missing ID is assigned a UUID and the
// status defaults to pending.
func (r *SearchRepository) Create(ctx context.Context, search *models.Search) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	if search.ID == "" {
		search.ID = uuid.New().String()
	}
	if search.Status == "" {
		search.Status = models.SearchStatusPending
	}

	now := time.Now()
	if search.CreatedAt.IsZero() {
		search.CreatedAt = now
	}
	search.UpdatedAt = now

	query := `
		INSERT INTO searches (id, name, email, phone, trademark_name, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		search.ID,
		search.Name,
		search.Email,
		nullableString(search.Phone),
		search.TrademarkName,
		nullableString(search.Description),
		search.Status,
		search.CreatedAt,
		search.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create search: %w", err)
	}

	return nil
}

// FindByID retrieves a single search record by its identifier.
func (r *SearchRepository) FindByID(ctx context.Context, id string) (*models.Search, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, name, email, phone, trademark_name, description, status, created_at, updated_at
		FROM searches
		WHERE id = ?
	`

	var search models.Search
	var phone, description sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&search.ID,
		&search.Name,
		&search.Email,
		&phone,
		&search.TrademarkName,
		&description,
		&search.Status,
		&search.CreatedAt,
		&search.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrSearchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find search: %w", err)
	}

	search.Phone = phone.String
	search.Description = description.String

	return &search, nil
}

// UpdateStatus transitions a search record to the given status.
func (r *SearchRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `UPDATE searches SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update search status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return errs.ErrSearchNotFound
	}

	return nil
}

// Delete removes a search record.
func (r *SearchRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM searches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return errs.ErrSearchNotFound
	}

	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
