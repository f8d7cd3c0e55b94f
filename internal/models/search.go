package models

import "time"

// Search status values. Plain strings, no further lifecycle.
const (
	SearchStatusPending   = "pending"
	SearchStatusCompleted = "completed"
	SearchStatusAbandoned = "abandoned"
)

// Search is a persisted trademark search request (a lead).
type Search struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	TrademarkName string    `json:"trademarkName"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IntakeResult separates the primary outcome of a lead intake (the
// confirmation email) from the advisory persistence outcome. A failed
// database write must not fail the notify path, but it is reported rather
// than silently discarded.
type IntakeResult struct {
	Search    *Search
	EmailID   string
	Persisted bool
	// PersistError carries the advisory failure detail when Persisted is false.
	PersistError string
}
