// Package postgres provides a PostgreSQL source backend for dataloom.
//
// This file registers the PostgreSQL backend with the source registry.
// Import this package with a blank identifier to register the backend:
//
//	import _ "github.com/dataloom-io/dataloom/pkg/sources/postgres"
package postgres

import (
	"log/slog"

	"github.com/dataloom-io/dataloom/pkg/source"
)

func init() {
	source.Register("postgres", func(logger *slog.Logger) source.Source { return New(logger) })
}
