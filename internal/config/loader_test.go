package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  port: 9090
database:
  host: db.internal
  port: 5433
  user: sebaran
  password: secret
  db_name: sebaran_penjualan
redis:
  addr: redis.internal:6379
boundary:
  mode: file
  dir: /var/lib/sebaran/geojson
log:
  level: debug
  format: console
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "sebaran", cfg.Database.User)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, BoundaryModeFile, cfg.Boundary.Mode)
	assert.Equal(t, "/var/lib/sebaran/geojson", cfg.Boundary.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, `
database:
  host: db.internal
  user: sebaran
  db_name: sebaran_penjualan
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, DefaultDBMaxConns, cfg.Database.MaxConns)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, DefaultBoundaryMode, cfg.Boundary.Mode)
	assert.Equal(t, DefaultBoundaryDir, cfg.Boundary.Dir)
	assert.Equal(t, DefaultBoundaryConcurrency, cfg.Map.BoundaryConcurrency)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	_, err := Load(writeTempConfig(t, `
server:
  port: 70000
database:
  host: db.internal
  user: sebaran
  db_name: sebaran_penjualan
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SEBARAN_DATABASE_HOST", "env-db")
	t.Setenv("SEBARAN_DATABASE_USER", "env-user")
	t.Setenv("SEBARAN_DATABASE_DB_NAME", "env-name")
	t.Setenv("SEBARAN_REDIS_ADDR", "env-redis:6379")
	t.Setenv("SEBARAN_SERVER_PORT", "7070")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, "env-name", cfg.Database.DBName)
	assert.Equal(t, "env-redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SEBARAN_DATABASE_HOST", "override-db")

	cfg, err := Load(writeTempConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "override-db", cfg.Database.Host)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
