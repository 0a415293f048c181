// Package query builds the SQL statement a source backend executes for a
// dataset schema. The output is a minimal projection/ordering/limiting query;
// WHERE clauses, joins and aggregation are intentionally unsupported.
package query

import (
	"fmt"
	"strings"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

// Build is a pure function of the schema's columns, table, order_by and limit.
// Identifiers are taken verbatim from the schema; they are trusted
// configuration and no quoting is performed.
func Build(s *dataset.Schema) string {
	cols := "*"
	if len(s.Columns) > 0 {
		names := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			names[i] = c.Name
		}
		cols = strings.Join(names, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", cols, s.Source.Table)

	if len(s.OrderBy) > 0 {
		fmt.Fprintf(&sb, " ORDER BY %s", strings.Join(s.OrderBy, ", "))
	}
	if s.Limit != nil {
		fmt.Fprintf(&sb, " LIMIT %d", *s.Limit)
	}

	return sb.String()
}
