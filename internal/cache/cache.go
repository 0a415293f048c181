// Package cache manages the per-dataset cache artifact: where it lives, when
// it can be trusted, and how it is read and written.
//
// The artifact's modification timestamp is the sole freshness signal; no
// checksum or schema-version stamp is kept alongside it.
package cache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

// weeklyWindow is the freshness window for update_frequency: weekly.
const weeklyWindow = 7 * 24 * time.Hour

// Manager computes cache locations, judges freshness and performs cache I/O
// for datasets under a single root directory.
type Manager struct {
	root   string
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewManager creates a cache manager rooted at the datasets directory.
// If logger is nil, a discard logger is used.
func NewManager(root string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{root: root, logger: logger, now: time.Now}
}

// Path returns the cache artifact location for the named dataset. An explicit
// destination.path is used verbatim under the dataset directory; otherwise the
// default is data.parquet or data.csv depending on the declared format.
func (m *Manager) Path(name string, s *dataset.Schema) string {
	if s.Destination.Path != "" {
		return filepath.Join(m.root, name, s.Destination.Path)
	}

	ext := "csv"
	if s.Destination.Format == "parquet" {
		ext = "parquet"
	}
	return filepath.Join(m.root, name, "data."+ext)
}

// Fresh reports whether the artifact at path can be served without a source
// reload under the given update frequency. A missing artifact is never fresh,
// and an unrecognized or absent frequency never trusts the cache.
func (m *Manager) Fresh(path, frequency string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	switch frequency {
	case "weekly":
		return m.now().Sub(info.ModTime()) < weeklyWindow
	default:
		return false
	}
}

// UnsupportedFormatError is returned when a schema declares a cache format
// this manager cannot (de)serialize. The format comes from the schema, not
// the file, so this can surface even for an artifact that looked fresh.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported cache format %q (supported: parquet, csv)", e.Format)
}
