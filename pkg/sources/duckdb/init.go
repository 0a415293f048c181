// Package duckdb provides a DuckDB source backend for dataloom.
//
// This file registers the DuckDB backend with the source registry.
// Import this package with a blank identifier to register the backend:
//
//	import _ "github.com/dataloom-io/dataloom/pkg/sources/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/dataloom-io/dataloom/pkg/source"
)

func init() {
	source.Register("duckdb", func(logger *slog.Logger) source.Source { return New(logger) })
}
