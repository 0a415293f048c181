package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SchemaFileName is the fixed name of the schema document inside a dataset
// directory.
const SchemaFileName = "schema.yaml"

// Schema is the declarative description of one dataset. It is read fresh from
// disk at the start of every load and discarded afterwards.
//
// Column and table names are trusted configuration, not user input: they are
// spliced verbatim into generated queries without quoting or escaping.
type Schema struct {
	Source          SourceConfig     `koanf:"source"`
	Columns         []Column         `koanf:"columns"`
	Destination     Destination      `koanf:"destination"`
	UpdateFrequency string           `koanf:"update_frequency"`
	OrderBy         []string         `koanf:"order_by"`
	Limit           *int             `koanf:"limit"`
	Transformations []Transformation `koanf:"transformations"`
}

// SourceConfig names the backend type, the table to read, and how to reach it.
type SourceConfig struct {
	Type       string     `koanf:"type"`
	Table      string     `koanf:"table"`
	Connection Connection `koanf:"connection"`
}

// Connection holds backend connection settings. Common fields are typed;
// anything backend-specific goes through Options.
type Connection struct {
	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"user"`
	Password string `koanf:"password"`

	// File-based databases (SQLite, DuckDB)
	Path string `koanf:"path"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Column declares one projected column. Type is informational.
type Column struct {
	Name string `koanf:"name"`
	Type string `koanf:"type"`
}

// Destination declares the cache artifact encoding and, optionally, an
// explicit file name relative to the dataset directory.
type Destination struct {
	Format string `koanf:"format"` // parquet or csv
	Path   string `koanf:"path"`
}

// Transformation is one ordered post-load rule applied to a single column.
type Transformation struct {
	Type   string         `koanf:"type"`
	Params map[string]any `koanf:"params"`
}

// SchemaNotFoundError is returned when a dataset directory has no schema
// document.
type SchemaNotFoundError struct {
	Dataset string
	Path    string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema file not found for dataset %q: %s", e.Dataset, e.Path)
}

// Load reads and parses the schema for the named dataset under root.
// The document is expected at <root>/<name>/schema.yaml.
func Load(root, name string) (*Schema, error) {
	path := filepath.Join(root, name, SchemaFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, &SchemaNotFoundError{Dataset: name, Path: path}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}

	var s Schema
	// WeaklyTypedInput lets order_by be written as either a scalar string or
	// a list in the YAML document.
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			WeaklyTypedInput: true,
			Result:           &s,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode schema %s: %w", path, err)
	}

	return &s, nil
}

// Validate checks the structural invariants of the schema. Registry membership
// of the source type is checked separately by pkg/source.
func (s *Schema) Validate() error {
	if s.Source.Type == "" {
		return fmt.Errorf("source type is required")
	}
	if s.Source.Table == "" {
		return fmt.Errorf("source table is required")
	}
	if s.Destination.Format == "" {
		return fmt.Errorf("destination format is required")
	}
	if s.Limit != nil && *s.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", *s.Limit)
	}
	return nil
}
