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
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
environment: test
source:
  type: file
  file_path: ./snapshots.json
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.EqualValues(t, 3, cfg.Source.Breaker.MaxFailures)
	assert.Equal(t, "latest_option_analysis", cfg.Postgres.Table)
	assert.Equal(t, 8, cfg.Signals.Workers)
	assert.Equal(t, 30*time.Second, cfg.Signals.CacheTTL)
}

func TestLoadSampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.Source.Type)
	assert.Equal(t, "option-analysis", cfg.Kafka.Ingest.Topic)
	assert.Equal(t, 500*time.Millisecond, cfg.Server.SlowRequest)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{Environment: "test"}
		c.Source.Type = SourcePostgres
		c.Signals.Workers = 1
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing environment", func(c *Config) { c.Environment = "" }, "environment is required"},
		{"unknown source", func(c *Config) { c.Source.Type = "mysql" }, "source.type must be"},
		{"file without path", func(c *Config) { c.Source.Type = SourceFile }, "file_path is required"},
		{"zero workers", func(c *Config) { c.Signals.Workers = 0 }, "signals.workers"},
		{"kafka without brokers", func(c *Config) {
			c.Kafka.Signals.Enabled = true
			c.Kafka.Signals.Topic = "signals"
		}, "kafka.brokers"},
		{"ingest without topic", func(c *Config) {
			c.Kafka.Brokers = []string{"localhost:9092"}
			c.Kafka.Ingest.Enabled = true
		}, "kafka.ingest.topic"},
		{"ingest into file source", func(c *Config) {
			c.Source.Type = SourceFile
			c.Source.FilePath = "x.json"
			c.Kafka.Brokers = []string{"localhost:9092"}
			c.Kafka.Ingest.Enabled = true
			c.Kafka.Ingest.Topic = "option-analysis"
		}, "writable source"},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true }, "redis.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_TYPE", "file")
	t.Setenv("SOURCE_FILE", "/tmp/snapshots.json")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(writeConfig(t, "environment: test\nsource:\n  type: postgres\n"))
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.Source.Type)
	assert.Equal(t, "/tmp/snapshots.json", cfg.Source.FilePath)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}
