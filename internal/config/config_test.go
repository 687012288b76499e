package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.User = "sebaran"
	cfg.Database.DBName = "sebaran_penjualan"
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantMsg: "server.port",
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantMsg: "database.host",
		},
		{
			name:    "missing database user",
			mutate:  func(c *Config) { c.Database.User = "" },
			wantMsg: "database.user",
		},
		{
			name:    "missing redis addr",
			mutate:  func(c *Config) { c.Redis.Addr = "" },
			wantMsg: "redis.addr",
		},
		{
			name:    "unknown boundary mode",
			mutate:  func(c *Config) { c.Boundary.Mode = "ftp" },
			wantMsg: "boundary.mode",
		},
		{
			name: "http mode without base url",
			mutate: func(c *Config) {
				c.Boundary.Mode = BoundaryModeHTTP
				c.Boundary.BaseURL = ""
			},
			wantMsg: "boundary.base_url",
		},
		{
			name: "minio mode without bucket",
			mutate: func(c *Config) {
				c.Boundary.Mode = BoundaryModeMinIO
				c.MinIO.Bucket = ""
			},
			wantMsg: "minio.bucket",
		},
		{
			name:    "sample attempts below one",
			mutate:  func(c *Config) { c.Map.SampleAttempts = 0 },
			wantMsg: "map.sample_attempts",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantMsg: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantMsg: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDBHost, cfg.Database.Host)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, DefaultRedisKeyPrefix, cfg.Redis.KeyPrefix)
	assert.Equal(t, DefaultRedisCacheTTL, cfg.Redis.CacheTTL)
	assert.Equal(t, DefaultMinIOBucket, cfg.MinIO.Bucket)
	assert.Equal(t, DefaultBoundaryTimeout, cfg.Boundary.Timeout)
	assert.Equal(t, geo.DefaultSampleAttempts, cfg.Map.SampleAttempts)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 3000
	cfg.Log.Level = "warn"
	cfg.Map.SampleAttempts = 50
	ApplyDefaults(cfg)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Map.SampleAttempts)
}

func TestApplyDefaults_NilConfig(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}
