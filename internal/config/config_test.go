package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Backend)
	require.Equal(t, "atelier.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "stdio", cfg.Transport.Mode)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATELIER_SERVER_PORT", "9090")
	t.Setenv("ATELIER_BACKEND", "postgrest")
	t.Setenv("ATELIER_POSTGREST_URL", "https://api.example/rest/v1")
	t.Setenv("ATELIER_POSTGREST_API_KEY", "secret")
	t.Setenv("ATELIER_LOG_LEVEL", "debug")
	t.Setenv("ATELIER_TRANSPORT_MODE", "http")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "postgrest", cfg.Backend)
	require.Equal(t, "https://api.example/rest/v1", cfg.Postgrest.URL)
	require.Equal(t, "secret", cfg.Postgrest.APIKey)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("backend: sqlite\ndb:\n  path: /tmp/studio.db\nlog:\n  level: warn\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("ATELIER_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/studio.db", cfg.DB.Path)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ATELIER_BACKEND", "dynamo")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadPostgrestRequiresURL(t *testing.T) {
	t.Setenv("ATELIER_BACKEND", "postgrest")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("ATELIER_SERVER_PORT", "not-a-port")
	_, err := config.Load()
	require.Error(t, err)
}
