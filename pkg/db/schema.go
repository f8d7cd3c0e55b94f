package db

import (
	"context"
	"fmt"
)

// searchesSchema is the single collection this service owns. Status values are
// plain strings ("pending", "completed", "abandoned") with no further lifecycle.
const searchesSchema = `
CREATE TABLE IF NOT EXISTS searches (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NULL,
	trademark_name VARCHAR(255) NOT NULL,
	description TEXT NULL,
	status VARCHAR(32) NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	INDEX idx_searches_email (email),
	INDEX idx_searches_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
`

// EnsureSchema creates the searches table when it does not exist yet.
func (c *Connection) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, searchesSchema); err != nil {
		return fmt.Errorf("failed to ensure searches schema: %w", err)
	}
	return nil
}
