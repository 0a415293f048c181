package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

func TestBuild(t *testing.T) {
	ten := 10
	zero := 0

	tests := []struct {
		name     string
		schema   dataset.Schema
		expected string
	}{
		{
			name: "projection only",
			schema: dataset.Schema{
				Source:  dataset.SourceConfig{Table: "t"},
				Columns: []dataset.Column{{Name: "a"}, {Name: "b"}},
			},
			expected: "SELECT a, b FROM t",
		},
		{
			name: "with order by",
			schema: dataset.Schema{
				Source:  dataset.SourceConfig{Table: "t"},
				Columns: []dataset.Column{{Name: "a"}, {Name: "b"}},
				OrderBy: []string{"a"},
			},
			expected: "SELECT a, b FROM t ORDER BY a",
		},
		{
			name: "with limit",
			schema: dataset.Schema{
				Source:  dataset.SourceConfig{Table: "t"},
				Columns: []dataset.Column{{Name: "a"}, {Name: "b"}},
				Limit:   &ten,
			},
			expected: "SELECT a, b FROM t LIMIT 10",
		},
		{
			name: "order by before limit",
			schema: dataset.Schema{
				Source:  dataset.SourceConfig{Table: "t"},
				Columns: []dataset.Column{{Name: "a"}, {Name: "b"}},
				OrderBy: []string{"a", "b"},
				Limit:   &ten,
			},
			expected: "SELECT a, b FROM t ORDER BY a, b LIMIT 10",
		},
		{
			name: "no columns selects everything",
			schema: dataset.Schema{
				Source: dataset.SourceConfig{Table: "events"},
			},
			expected: "SELECT * FROM events",
		},
		{
			name: "zero limit is emitted",
			schema: dataset.Schema{
				Source:  dataset.SourceConfig{Table: "t"},
				Columns: []dataset.Column{{Name: "a"}},
				Limit:   &zero,
			},
			expected: "SELECT a FROM t LIMIT 0",
		},
		{
			name: "identifiers are verbatim",
			schema: dataset.Schema{
				Source:  dataset.SourceConfig{Table: "analytics.page_views"},
				Columns: []dataset.Column{{Name: "user"}, {Name: "count(*)"}},
			},
			expected: "SELECT user, count(*) FROM analytics.page_views",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Build(&tt.schema))
		})
	}
}

func TestBuildIsPure(t *testing.T) {
	s := dataset.Schema{
		Source:  dataset.SourceConfig{Table: "t"},
		Columns: []dataset.Column{{Name: "a"}},
	}
	first := Build(&s)
	assert.Equal(t, first, Build(&s))
}
