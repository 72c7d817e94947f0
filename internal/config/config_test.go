package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_DRIVER", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Board.CacheTTL())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  mode: release
  env: production
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: board
  dbname: ideas
redis:
  enabled: true
  host: cache.internal
  port: 6379
board:
  cache_ttl_seconds: 10
`)
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "board:s3cret@tcp(db.internal:3306)/ideas?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.GetDSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Board.CacheTTL())
	// unset sections keep their defaults
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown driver", body: "database:\n  driver: postgres\n"},
		{name: "mysql without host", body: "database:\n  driver: mysql\n  host: \"\"\n"},
		{name: "bad gin mode", body: "server:\n  mode: verbose\n"},
		{name: "malformed yaml", body: "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
