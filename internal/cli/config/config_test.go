package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDatasetsDir, cfg.DatasetsDir)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataloom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets_dir: /srv/datasets\nverbose: true\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/datasets", cfg.DatasetsDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.Output, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataloom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets_dir: /srv/datasets\n"), 0o644))
	t.Setenv("DATALOOM_DATASETS_DIR", "/env/datasets")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/env/datasets", cfg.DatasetsDir)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DATALOOM_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("datasets-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "csv"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Output)
	assert.Equal(t, DefaultDatasetsDir, cfg.DatasetsDir, "unchanged flags do not override")
}

func TestLoadBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataloom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets_dir: [broken"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
}
