package source

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Source)
)

// known maps every source type dataloom ships a backend for to the package
// that provides it. A type present here but absent from the registry means
// the backend was not compiled into this binary.
var known = map[string]string{
	"postgres": "github.com/dataloom-io/dataloom/pkg/sources/postgres",
	"sqlite":   "github.com/dataloom-io/dataloom/pkg/sources/sqlite",
	"duckdb":   "github.com/dataloom-io/dataloom/pkg/sources/duckdb",
}

// Register adds a source factory to the registry.
// Called by backend implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Source) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
	if _, ok := known[name]; !ok {
		known[name] = ""
	}
}

// Get retrieves a source factory by type name.
func Get(name string) (func(*slog.Logger) Source, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// List returns all registered source type names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a source type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// Validate checks that a schema's source type can be dispatched. It runs
// before any cache decision or source I/O so that invalid configurations
// fail fast.
func Validate(name string) error {
	if IsRegistered(name) {
		return nil
	}
	registryMu.RLock()
	pkg, isKnown := known[name]
	registryMu.RUnlock()
	if isKnown {
		return &UnavailableError{Type: name, Package: pkg}
	}
	return &UnknownSourceError{Type: name, Available: List()}
}

// New creates a source backend for the given type.
// The logger is passed to the backend constructor (nil uses a discard logger).
func New(name string, logger *slog.Logger) (Source, error) {
	if err := Validate(name); err != nil {
		return nil, err
	}
	factory, _ := Get(name)
	return factory(logger), nil
}

// UnknownSourceError is returned when a schema names a source type no backend
// exists for.
type UnknownSourceError struct {
	Type      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unsupported source type %q\nAvailable sources: %v\nHint: check source.type in your schema.yaml", e.Type, e.Available)
}

// UnavailableError is returned when a source type is supported but its
// backend was not compiled into the binary. This is a deployment error, not
// a schema error: the fix is to rebuild with the backend imported.
type UnavailableError struct {
	Type    string
	Package string
}

func (e *UnavailableError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("source backend for %q is not available in this build", e.Type)
	}
	return fmt.Sprintf("source backend for %q is not available in this build\nHint: import _ %q in your main package", e.Type, e.Package)
}
