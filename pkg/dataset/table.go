// Package dataset defines the domain data for dataloom: the declarative
// per-dataset schema and the in-memory table a load produces.
//
// This package holds data only. Loading behavior lives in internal/loader,
// source backends in pkg/sources, and cache handling in internal/cache.
package dataset

// Table is an in-memory rectangular dataset with named columns.
// Rows are row-major; every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable creates a table from column names and row values.
func NewTable(columns []string, rows [][]any) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}
