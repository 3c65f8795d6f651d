package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, ":5000", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, 24*time.Hour, cfg.AccessTTL())
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: prod
server:
  addr: ":8080"
storage:
  driver: postgres
  dsn: postgres://file-dsn
jwt:
  access_ttl: 2h
`), 0o600))

	t.Setenv("STORAGE_DSN", "postgres://env-dsn")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.App.Env)
	require.Equal(t, ":8080", cfg.Server.Addr)
	// env pisa al yaml
	require.Equal(t, "postgres://env-dsn", cfg.Storage.DSN)
	require.Equal(t, "s3cret", cfg.JWT.Secret)
	require.Equal(t, 2*time.Hour, cfg.AccessTTL())
	require.NoError(t, cfg.ValidateSecret())
}

func TestValidateSecret(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.JWT.Secret = ""
	require.ErrorIs(t, cfg.ValidateSecret(), ErrMissingSecret)

	cfg.JWT.Secret = "x"
	require.NoError(t, cfg.ValidateSecret())
}
