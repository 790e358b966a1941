package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYaml = `
app:
  port: 8080
  env: development
  gin_mode: test
database:
  dsn: host=localhost user=blog dbname=blog
redis:
  addr: localhost:6379
  db: 0
jwt:
  access_secret: file-access
  refresh_secret: file-refresh
  access_ttl: 15m
  refresh_ttl: 720h
otp:
  verify_window: 2m
  confirm_window: 10m
uploads:
  dir: uploads
  width: 835
  height: 577
queue:
  concurrency: 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, testYaml))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "15m0s", cfg.AccessTTL.String())
	assert.Equal(t, "720h0m0s", cfg.RefreshTTL.String())
	assert.Equal(t, "2m0s", cfg.OtpVerifyWindow.String())
	assert.Equal(t, "10m0s", cfg.OtpConfirmWindow.String())
	assert.Equal(t, 835, cfg.ImageWidth)
	assert.Equal(t, 4, cfg.QueueConcurrency)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("REFRESH_TOKEN_SECRET", "env-refresh")
	t.Setenv("DATABASE_DSN", "host=db user=prod dbname=prod")

	cfg, err := LoadFrom(writeConfig(t, testYaml))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "env-access", cfg.AccessSecret)
	assert.Equal(t, "env-refresh", cfg.RefreshSecret)
	assert.Equal(t, "host=db user=prod dbname=prod", cfg.DSN)
}

func TestLoadFromRejectsBadDurations(t *testing.T) {
	bad := `
app:
  port: 8080
jwt:
  access_ttl: soon
  refresh_ttl: 720h
otp:
  verify_window: 2m
  confirm_window: 10m
`
	_, err := LoadFrom(writeConfig(t, bad))
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
