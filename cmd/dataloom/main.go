// Package main is the dataloom CLI entry point.
package main

import (
	"github.com/dataloom-io/dataloom/internal/cli"

	// Source backends compiled into this binary. A schema whose source.type
	// has no matching import here fails with a backend-unavailable error.
	_ "github.com/dataloom-io/dataloom/pkg/sources/duckdb"
	_ "github.com/dataloom-io/dataloom/pkg/sources/postgres"
	_ "github.com/dataloom-io/dataloom/pkg/sources/sqlite"
)

func main() {
	cli.Execute()
}
