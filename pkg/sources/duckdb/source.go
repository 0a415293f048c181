// Package duckdb provides a DuckDB source backend for dataloom.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/source"
)

// Source implements the source.Source interface for DuckDB.
type Source struct {
	Logger *slog.Logger
}

// New creates a new DuckDB source instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{Logger: logger}
}

// ExecuteQuery opens the database, runs the query and returns the result.
// Use ":memory:" (or leave path empty) for an in-memory database.
func (s *Source) ExecuteQuery(ctx context.Context, conn dataset.Connection, query string) (*dataset.Table, error) {
	path := conn.Path
	if path == "" {
		path = ":memory:"
	}

	s.Logger.Debug("opening duckdb database", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	return source.QueryTable(ctx, db, query)
}

// Ensure Source implements source.Source interface
var _ source.Source = (*Source)(nil)
