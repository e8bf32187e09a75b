package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "default", settings.Server.Profile)
	assert.Equal(t, 30*time.Second, settings.Server.RequestTimeout)
	assert.Equal(t, "ctrl-]", settings.WebSSH.PrefixKey)
	assert.Equal(t, 150*time.Millisecond, settings.WebSSH.ResizeDebounce)
	assert.Equal(t, 1<<20, settings.WebSSH.ScrollbackBytes)
	assert.Equal(t, 5*time.Second, settings.WebSSH.TeardownTimeout)
	assert.Equal(t, time.Minute, settings.Catalog.CacheTTL)
	assert.Equal(t, filepath.Join(home, ".kmdb", "kmdb.log"), settings.Log.Path)
	assert.Equal(t, filepath.Join(home, ".kmdb", "history.toml"), settings.History.Path)
	assert.Equal(t, filepath.Join(home, ".kmdb", "secrets"), settings.Secrets.Dir)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".kmdb"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".kmdb", "config.toml"), []byte(`
[server]
url = "https://kmdb.example.com/api/v1/"
profile = "prod"

[webssh]
prefix_key = "ctrl-b"
resize_debounce = "300ms"
record_dir = "/tmp/casts"
`), 0o600))

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://kmdb.example.com/api/v1", settings.Server.URL)
	assert.Equal(t, "prod", settings.Server.Profile)
	assert.Equal(t, "ctrl-b", settings.WebSSH.PrefixKey)
	assert.Equal(t, 300*time.Millisecond, settings.WebSSH.ResizeDebounce)
	assert.Equal(t, "/tmp/casts", settings.WebSSH.RecordDir)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KMDB_SERVER_URL", "http://localhost:8080/api/v1")
	t.Setenv("KMDB_WEBSSH_TEARDOWN_TIMEOUT", "2s")

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", settings.Server.URL)
	assert.Equal(t, 2*time.Second, settings.WebSSH.TeardownTimeout)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".kmdb"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".kmdb", "config.toml"), []byte("[server"), 0o600))

	_, err := Load(viper.New())
	require.ErrorContains(t, err, "read config file")
}
