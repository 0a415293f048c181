// Package postgres provides a PostgreSQL source backend for dataloom.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/source"
)

// Source implements the source.Source interface for PostgreSQL.
type Source struct {
	Logger *slog.Logger
}

// New creates a new PostgreSQL source instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{Logger: logger}
}

// ExecuteQuery opens a connection, runs the query and returns the result.
func (s *Source) ExecuteQuery(ctx context.Context, conn dataset.Connection, query string) (*dataset.Table, error) {
	dsn := buildPostgresDSN(conn)

	s.Logger.Debug("connecting to postgres", slog.String("host", conn.Host), slog.String("database", conn.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return source.QueryTable(ctx, db, query)
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(conn dataset.Connection) string {
	// Build key=value format: host=localhost port=5432 dbname=... sslmode=...
	host := conn.Host
	if host == "" {
		host = "localhost"
	}

	port := conn.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if conn.Options != nil {
		if mode, ok := conn.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, conn.Database, sslmode)

	if conn.Username != "" {
		dsn += fmt.Sprintf(" user=%s", conn.Username)
	}
	if conn.Password != "" {
		dsn += fmt.Sprintf(" password=%s", conn.Password)
	}

	return dsn
}

// Ensure Source implements source.Source interface
var _ source.Source = (*Source)(nil)
