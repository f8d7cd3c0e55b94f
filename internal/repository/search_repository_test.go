package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrly/leads-service/internal/errs"
	"registrly/leads-service/internal/models"
)

func TestCreateSearch(t *testing.T) {
	tests := []struct {
		name        string
		search      *models.Search
		setupMock   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful creation",
			search: &models.Search{
				Name:          "Ada Lovelace",
				Email:         "ada@example.com",
				Phone:         "+1 555 0100",
				TrademarkName: "Lovelace Labs",
				Description:   "software tooling",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO searches`).
					WithArgs(
						sqlmock.AnyArg(), // id
						"Ada Lovelace",
						"ada@example.com",
						"+1 555 0100",
						"Lovelace Labs",
						"software tooling",
						models.SearchStatusPending,
						sqlmock.AnyArg(), // created_at
						sqlmock.AnyArg(), // updated_at
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectError: false,
		},
		{
			name: "optional fields stored as null",
			search: &models.Search{
				Name:          "Bob",
				Email:         "bob@example.com",
				TrademarkName: "Bobware",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO searches`).
					WithArgs(
						sqlmock.AnyArg(),
						"Bob",
						"bob@example.com",
						nil,
						"Bobware",
						nil,
						models.SearchStatusPending,
						sqlmock.AnyArg(),
						sqlmock.AnyArg(),
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectError: false,
		},
		{
			name: "database error",
			search: &models.Search{
				Name:          "Ada",
				Email:         "ada@example.com",
				TrademarkName: "Lovelace Labs",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO searches`).
					WillReturnError(sql.ErrConnDone)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			repo := NewSearchRepository(db)

			tt.setupMock(mock)

			err = repo.Create(context.Background(), tt.search)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, tt.search.ID)
				assert.Equal(t, models.SearchStatusPending, tt.search.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindSearchByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSearchRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "trademark_name", "description", "status", "created_at", "updated_at",
	}).AddRow("abc-123", "Ada", "ada@example.com", nil, "Lovelace Labs", nil, "pending", now, now)

	mock.ExpectQuery(`SELECT .+ FROM searches`).
		WithArgs("abc-123").
		WillReturnRows(rows)

	search, err := repo.FindByID(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "abc-123", search.ID)
	assert.Equal(t, "Lovelace Labs", search.TrademarkName)
	assert.Empty(t, search.Phone)
	assert.Equal(t, models.SearchStatusPending, search.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSearchByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSearchRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM searches`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, errs.ErrSearchNotFound)
}

func TestUpdateSearchStatus(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectError error
	}{
		{
			name: "successful update",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE searches SET status`).
					WithArgs(models.SearchStatusCompleted, sqlmock.AnyArg(), "abc-123").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unknown record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE searches SET status`).
					WithArgs(models.SearchStatusCompleted, sqlmock.AnyArg(), "abc-123").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectError: errs.ErrSearchNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			repo := NewSearchRepository(db)

			tt.setupMock(mock)

			err = repo.UpdateStatus(context.Background(), "abc-123", models.SearchStatusCompleted)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSearchRepository(db)

	mock.ExpectExec(`DELETE FROM searches`).
		WithArgs("abc-123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "abc-123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
