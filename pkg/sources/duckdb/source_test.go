package duckdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataloom-io/dataloom/pkg/dataset"
	"github.com/dataloom-io/dataloom/pkg/source"
)

func TestExecuteQuery(t *testing.T) {
	src := New(nil)

	tbl, err := src.ExecuteQuery(context.Background(), dataset.Connection{},
		"SELECT 1 AS id, 'alice@example.com' AS email")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "email"}, tbl.Columns)
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "alice@example.com", tbl.Rows[0][1])
}

func TestExecuteQueryBadSQL(t *testing.T) {
	src := New(nil)
	_, err := src.ExecuteQuery(context.Background(), dataset.Connection{},
		"SELECT * FROM missing_table")
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.True(t, source.IsRegistered("duckdb"))

	factory, ok := source.Get("duckdb")
	require.True(t, ok)
	assert.NotNil(t, factory(nil))
}
