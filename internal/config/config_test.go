package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: "9090"
  mode: debug
upstream:
  base_url: http://school.local/api
  timeout: 3s
source:
  type: api
redis:
  cache_ttl: 1m
report:
  head_teacher: "Marta Rojas"
cors:
  allowed_origins: ["http://localhost:5173"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, sampleConfig+"storage:\n  type: local\n  local_path: "+filepath.Join(t.TempDir(), "files")+"\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://school.local/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 4, cfg.Upstream.Concurrency)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "Marta Rojas", cfg.Report.HeadTeacher)
	assert.Equal(t, "templates", cfg.Report.TemplatePrefix)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.DirExists(t, cfg.Storage.LocalPath)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("UPSTREAM_BASE_URL", "http://override.local")
	t.Setenv("SCHOOL_REPORTS_UPSTREAM_CONCURRENCY", "8")
	t.Setenv("STORAGE_TYPE", "minio")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://override.local", cfg.Upstream.BaseURL)
	assert.Equal(t, 8, cfg.Upstream.Concurrency)
	assert.Equal(t, "minio", cfg.Storage.Type)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Mode: "debug"},
			Upstream: UpstreamConfig{BaseURL: "http://x", Concurrency: 1},
			Source:   SourceConfig{Type: "api"},
			Storage:  StorageConfig{Type: "local"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"api without base url", func(c *Config) { c.Upstream.BaseURL = "" }},
		{"database without host", func(c *Config) { c.Source.Type = "database" }},
		{"unknown source", func(c *Config) { c.Source.Type = "csv" }},
		{"zero concurrency", func(c *Config) { c.Upstream.Concurrency = 0 }},
		{"unknown storage", func(c *Config) { c.Storage.Type = "s3" }},
		{"unknown mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"short secret in release", func(c *Config) {
			c.Server.Mode = "release"
			c.JWT.Secret = "short"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
