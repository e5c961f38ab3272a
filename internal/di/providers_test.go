package di

import (
	"os"
	"path/filepath"
	"testing"

	"SmartMoney/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	p := filepath.Join(t.TempDir(), "analyses.json")
	require.NoError(t, os.WriteFile(p, []byte(`[]`), 0o600))

	cfg := &config.Config{Environment: "test"}
	cfg.Log.Level = "error"
	cfg.Source.Type = config.SourceFile
	cfg.Source.FilePath = p
	cfg.Signals.Workers = 2
	return cfg
}

func TestProvidersForFileSource(t *testing.T) {
	cfg := fileConfig(t)
	l, err := ProvideLogger(cfg)
	require.NoError(t, err)

	store, cleanup, err := ProvideAnalysisStore(cfg, l)
	require.NoError(t, err)
	defer cleanup()

	pub, pubCleanup, err := ProvideSignalPublisher(cfg, l)
	require.NoError(t, err)
	defer pubCleanup()
	assert.Nil(t, pub)

	consumer, err := ProvideIngestConsumer(cfg, store, nil, l)
	require.NoError(t, err)
	assert.Nil(t, consumer)

	cache, cacheCleanup := ProvideResponseCache(cfg, l)
	defer cacheCleanup()
	assert.NotNil(t, cache)
}

func TestProvideLoggerRejectsBadLevel(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Log.Level = "loud"
	_, err := ProvideLogger(cfg)
	assert.Error(t, err)
}
