package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable([]string{"id", "email"}, [][]any{
		{int64(1), "a@example.com"},
		{int64(2), "b@example.com"},
	})

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())

	idx, ok := tbl.ColumnIndex("email")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = tbl.ColumnIndex("missing")
	assert.False(t, ok)
}

func TestTableEmpty(t *testing.T) {
	tbl := NewTable([]string{"id"}, nil)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 1, tbl.NumCols())
}
