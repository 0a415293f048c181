package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/source"
)

// The cache codec runs through a scratch in-memory DuckDB connection.
// DuckDB already speaks both artifact formats (read_parquet/read_csv_auto on
// the way in, COPY ... TO on the way out), so there is exactly one
// serialization path to maintain.

// Read loads the artifact at path into a table using the schema-declared
// format.
func (m *Manager) Read(ctx context.Context, path, format string) (*dataset.Table, error) {
	var from string
	switch format {
	case "parquet":
		from = fmt.Sprintf("read_parquet('%s')", escapeString(path))
	case "csv":
		from = fmt.Sprintf("read_csv_auto('%s', header=true)", escapeString(path))
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}

	m.logger.Debug("reading cache artifact", slog.String("path", path), slog.String("format", format))

	db, err := openScratch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	tbl, err := source.QueryTable(ctx, db, "SELECT * FROM "+from)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache artifact %s: %w", path, err)
	}
	return tbl, nil
}

// Write serializes the table to path in the schema-declared format, without a
// row index column. The destination directory must already exist. The
// artifact is written to a temporary file and renamed into place so a failed
// write never clobbers a previously valid artifact.
func (m *Manager) Write(ctx context.Context, path, format string, t *dataset.Table) error {
	var copyOpts string
	switch format {
	case "parquet":
		copyOpts = "FORMAT PARQUET"
	case "csv":
		copyOpts = "FORMAT CSV, HEADER"
	default:
		return &UnsupportedFormatError{Format: format}
	}

	m.logger.Debug("writing cache artifact",
		slog.String("path", path), slog.String("format", format), slog.Int("rows", t.NumRows()))

	db, err := openScratch(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := stageTable(ctx, db, t); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dataloom-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	_ = os.Remove(tmpPath) // DuckDB creates the file itself

	copySQL := fmt.Sprintf("COPY staging TO '%s' (%s)", escapeString(tmpPath), copyOpts)
	if _, err := db.ExecContext(ctx, copySQL); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to serialize cache artifact: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move cache artifact into place: %w", err)
	}
	return nil
}

// openScratch opens an in-memory DuckDB connection for one codec operation.
func openScratch(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache codec connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache codec connection: %w", err)
	}
	return db, nil
}

// stageTable materializes the table as a DuckDB table named staging.
func stageTable(ctx context.Context, db *sql.DB, t *dataset.Table) error {
	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(col), columnType(t, i))
	}
	createSQL := fmt.Sprintf("CREATE TABLE staging (%s)", strings.Join(defs, ", "))
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to stage cache table: %w", err)
	}

	if t.NumRows() == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO staging VALUES (%s)", placeholders)
	for _, row := range t.Rows {
		if _, err := db.ExecContext(ctx, insertSQL, row...); err != nil {
			return fmt.Errorf("failed to stage cache row: %w", err)
		}
	}
	return nil
}

// columnType picks a DuckDB type from the first non-nil value in the column.
// An all-nil column degrades to VARCHAR.
func columnType(t *dataset.Table, col int) string {
	for _, row := range t.Rows {
		switch row[col].(type) {
		case nil:
			continue
		case bool:
			return "BOOLEAN"
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return "BIGINT"
		case float32, float64:
			return "DOUBLE"
		case time.Time:
			return "TIMESTAMP WITH TIME ZONE"
		default:
			return "VARCHAR"
		}
	}
	return "VARCHAR"
}

// escapeString escapes a value for a single-quoted DuckDB string literal.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteIdent quotes a column name for the staging table. This quoting is
// internal to the codec; names in source queries stay verbatim.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
