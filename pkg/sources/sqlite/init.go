// Package sqlite provides a SQLite source backend for dataloom.
//
// This file registers the SQLite backend with the source registry.
// Import this package with a blank identifier to register the backend:
//
//	import _ "github.com/dataloom-io/dataloom/pkg/sources/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/dataloom-io/dataloom/pkg/source"
)

func init() {
	source.Register("sqlite", func(logger *slog.Logger) source.Source { return New(logger) })
}
