// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"career-predictor/internal/common/config"

	_ "github.com/lib/pq"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// NewPostgresFromDB wraps an already opened handle.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// FetchPayload reads the payload column of the row named name from table.
// Rows are expected in the shape (name TEXT PRIMARY KEY, payload BYTEA|TEXT).
func (c *PostgresClient) FetchPayload(ctx context.Context, table, name string) ([]byte, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	query := fmt.Sprintf("SELECT payload FROM %s WHERE name = $1", table)

	var payload []byte
	err := c.DB.QueryRowContext(ctx, query, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("row %q in %s: %w", name, table, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query %s for %q: %w", table, name, err)
	}
	return payload, nil
}

// UpsertPayload writes payload under name. Used by publishing tools.
func (c *PostgresClient) UpsertPayload(ctx context.Context, table, name string, payload []byte) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (name, payload) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload",
		table,
	)
	_, err := c.DB.ExecContext(ctx, query, name, payload)
	return err
}
