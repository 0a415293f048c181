// Package commands implements the dataloom subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

// renderResult writes the loaded table to w in the requested format.
func renderResult(w io.Writer, t *dataset.Table, format string) error {
	switch format {
	case "json":
		return renderJSON(w, t)
	case "csv":
		return renderCSV(w, t)
	case "md", "markdown":
		return renderMarkdown(w, t)
	default:
		return renderPretty(w, t)
	}
}

func renderPretty(w io.Writer, t *dataset.Table) error {
	if t.NumRows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	headerRow := make(table.Row, t.NumCols())
	for i, col := range t.Columns {
		headerRow[i] = col
	}
	tw.AppendHeader(headerRow)

	for _, row := range t.Rows {
		tr := make(table.Row, t.NumCols())
		for i := range t.Columns {
			tr[i] = formatValue(row[i])
		}
		tw.AppendRow(tr)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", t.NumRows())
	return nil
}

func renderJSON(w io.Writer, t *dataset.Table) error {
	records := make([]map[string]any, 0, t.NumRows())
	for _, row := range t.Rows {
		rec := make(map[string]any, t.NumCols())
		for i, col := range t.Columns {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderCSV(w io.Writer, t *dataset.Table) error {
	_, _ = fmt.Fprintln(w, strings.Join(t.Columns, ","))
	for _, row := range t.Rows {
		values := make([]string, t.NumCols())
		for i := range t.Columns {
			values[i] = escapeCSV(formatValue(row[i]))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, t *dataset.Table) error {
	if t.NumRows() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(t.Columns, " | "))
	seps := make([]string, t.NumCols())
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range t.Rows {
		values := make([]string, t.NumCols())
		for i := range t.Columns {
			values[i] = formatValue(row[i])
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
