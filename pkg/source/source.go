// Package source provides the backend contract and registry for dataloom's
// data sources.
//
// A source backend knows how to execute a query against one kind of data
// source (a SQL database, a warehouse, an API) and return the result as a
// table. Concrete backends live in pkg/sources/ subdirectories and register
// themselves on import.
package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

// Source is the single capability every backend exposes: execute a query
// against the configured source and return the materialized result.
type Source interface {
	// ExecuteQuery runs the query against the source described by conn.
	// Errors raised by the underlying driver propagate to the caller;
	// this layer does not interpret source-specific failures.
	ExecuteQuery(ctx context.Context, conn dataset.Connection, query string) (*dataset.Table, error)
}

// QueryTable executes the query on an open database handle and collects the
// full result set into a table. []byte cells are converted to strings so
// callers see text, not driver buffers.
func QueryTable(ctx context.Context, db *sql.DB, query string) (*dataset.Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return dataset.NewTable(cols, result), nil
}
