// Package sqlite provides a SQLite source backend for dataloom.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/source"
)

// Source implements the source.Source interface for SQLite.
type Source struct {
	Logger *slog.Logger
}

// New creates a new SQLite source instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{Logger: logger}
}

// ExecuteQuery opens the database file, runs the query and returns the result.
func (s *Source) ExecuteQuery(ctx context.Context, conn dataset.Connection, query string) (*dataset.Table, error) {
	dsn := buildSQLiteDSN(conn)

	s.Logger.Debug("opening sqlite database", slog.String("dsn", dsn))

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	return source.QueryTable(ctx, db, query)
}

// buildSQLiteDSN constructs a SQLite connection string.
// The database file comes from connection.path (falling back to
// connection.database); options become file URI query parameters.
func buildSQLiteDSN(conn dataset.Connection) string {
	path := conn.Path
	if path == "" {
		path = conn.Database
	}
	if path == "" {
		path = ":memory:"
	}

	if len(conn.Options) == 0 {
		return path
	}

	params := url.Values{}
	for k, v := range conn.Options {
		params.Set(k, v)
	}
	return "file:" + path + "?" + params.Encode()
}

// Ensure Source implements source.Source interface
var _ source.Source = (*Source)(nil)
