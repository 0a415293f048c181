package source

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataloom-io/dataloom/pkg/dataset"
)

type stubSource struct {
	logger *slog.Logger
}

func (s *stubSource) ExecuteQuery(_ context.Context, _ dataset.Connection, _ string) (*dataset.Table, error) {
	return dataset.NewTable([]string{"a"}, nil), nil
}

func TestRegisterAndGet(t *testing.T) {
	Register("stub", func(logger *slog.Logger) Source { return &stubSource{logger: logger} })

	factory, ok := Get("stub")
	require.True(t, ok)
	assert.NotNil(t, factory(nil))

	assert.True(t, IsRegistered("stub"))
	assert.Contains(t, List(), "stub")
}

func TestValidateRegistered(t *testing.T) {
	Register("stub-valid", func(logger *slog.Logger) Source { return &stubSource{logger: logger} })
	assert.NoError(t, Validate("stub-valid"))
}

func TestValidateUnknownType(t *testing.T) {
	err := Validate("mongodb")
	require.Error(t, err)

	var unknown *UnknownSourceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "mongodb", unknown.Type)
	assert.Contains(t, err.Error(), "unsupported source type")
	assert.Contains(t, err.Error(), "mongodb")
}

func TestValidateKnownButUnregistered(t *testing.T) {
	// Simulate a backend dataloom ships but this binary was built without.
	registryMu.Lock()
	known["mysql"] = "github.com/dataloom-io/dataloom/pkg/sources/mysql"
	registryMu.Unlock()
	defer func() {
		registryMu.Lock()
		delete(known, "mysql")
		registryMu.Unlock()
	}()

	err := Validate("mysql")
	require.Error(t, err)

	var unavailable *UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "mysql", unavailable.Type)
	assert.Contains(t, err.Error(), "not available in this build")
	assert.Contains(t, err.Error(), "pkg/sources/mysql")
}

func TestNew(t *testing.T) {
	Register("stub-new", func(logger *slog.Logger) Source { return &stubSource{logger: logger} })

	src, err := New("stub-new", nil)
	require.NoError(t, err)
	assert.NotNil(t, src)

	_, err = New("mongodb", nil)
	var unknown *UnknownSourceError
	require.True(t, errors.As(err, &unknown))
}
