package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"registrly/leads-service/internal/config"
	"registrly/leads-service/pkg/logger"
)

const (
	connectAttempts = 5
	pingTimeout     = 3 * time.Second
)

// Connection wraps the sql.DB pool for the searches database.
type Connection struct {
	DB *sql.DB
}

// buildDSN renders the MySQL DSN. parseTime is required because search
// records scan created_at/updated_at into time.Time.
func buildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)
}

// Connect opens the pool described by cfg and verifies it with a ping,
// retrying with a growing pause while the database is still coming up.
// Pool limits come straight from cfg; config supplies the defaults.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Connection, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			db.Close()
			return nil, fmt.Errorf("failed to reach database after %d attempts: %w", connectAttempts, err)
		}

		wait := time.Duration(attempt) * time.Second
		log.WithFields(map[string]interface{}{
			"attempt": attempt,
			"wait":    wait.String(),
			"error":   err.Error(),
		}).Warn("Database not reachable yet, retrying")

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return &Connection{DB: db}, nil
}

// Close closes the underlying pool.
func (c *Connection) Close() error {
	return c.DB.Close()
}

// Ping verifies the pool can still reach the database.
func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}
