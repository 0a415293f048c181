package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

func sampleTable() *dataset.Table {
	return dataset.NewTable(
		[]string{"id", "email", "score", "active", "created_at"},
		[][]any{
			{int64(1), "alice@example.com", 0.5, true, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
			{int64(2), "bob@example.com", 1.25, false, time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)},
			{int64(3), nil, 2.5, true, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)},
		},
	)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []string{"parquet", "csv"} {
		t.Run(format, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			m := NewManager(dir, nil)
			path := filepath.Join(dir, "data."+format)

			in := sampleTable()
			require.NoError(t, m.Write(ctx, path, format, in))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())

			out, err := m.Read(ctx, path, format)
			require.NoError(t, err)

			assert.Equal(t, in.Columns, out.Columns)
			assert.Equal(t, in.NumRows(), out.NumRows())
		})
	}
}

func TestRoundTripEmptyTable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := NewManager(dir, nil)
	path := filepath.Join(dir, "data.parquet")

	in := dataset.NewTable([]string{"id", "email"}, nil)
	require.NoError(t, m.Write(ctx, path, "parquet", in))

	out, err := m.Read(ctx, path, "parquet")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email"}, out.Columns)
	assert.Equal(t, 0, out.NumRows())
}

func TestReadUnsupportedFormat(t *testing.T) {
	m := NewManager(t.TempDir(), nil)

	_, err := m.Read(context.Background(), "data.feather", "feather")
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "feather", unsupported.Format)
}

func TestWriteUnsupportedFormat(t *testing.T) {
	m := NewManager(t.TempDir(), nil)

	err := m.Write(context.Background(), "data.feather", "feather", sampleTable())
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
}

func TestWriteLeavesNoTempFilesBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := NewManager(dir, nil)

	require.NoError(t, m.Write(ctx, filepath.Join(dir, "data.csv"), "csv", sampleTable()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.csv", entries[0].Name())
}

func TestWriteOverwritesPreviousArtifact(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := NewManager(dir, nil)
	path := filepath.Join(dir, "data.csv")

	require.NoError(t, m.Write(ctx, path, "csv", sampleTable()))

	smaller := dataset.NewTable([]string{"id"}, [][]any{{int64(1)}})
	require.NoError(t, m.Write(ctx, path, "csv", smaller))

	out, err := m.Read(ctx, path, "csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, out.Columns)
	assert.Equal(t, 1, out.NumRows())
}

func TestQuotedColumnNames(t *testing.T) {
	// Staging must survive column names that collide with SQL keywords.
	ctx := context.Background()
	dir := t.TempDir()
	m := NewManager(dir, nil)
	path := filepath.Join(dir, "data.csv")

	in := dataset.NewTable([]string{"order", "select"}, [][]any{{int64(1), "a"}})
	require.NoError(t, m.Write(ctx, path, "csv", in))

	out, err := m.Read(ctx, path, "csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"order", "select"}, out.Columns)
}
