package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(Config{
		Host: "db", Port: 5432, User: "app", Password: "s3cr#t", Database: "markets", SSLMode: "require",
	})
	assert.Equal(t, "postgres://app:s3cr%23t@db:5432/markets?sslmode=require", dsn)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "s3cr#t", cfg.ConnConfig.Password)
	assert.Equal(t, "markets", cfg.ConnConfig.Database)
}

func TestOptionsIgnoreZeroValues(t *testing.T) {
	cfg := Config{Port: 5432, SSLMode: "disable", MaxConns: 10}
	WithHost("db", 0)(&cfg)
	WithSSLMode("")(&cfg)
	WithMaxConns(0)(&cfg)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.EqualValues(t, 10, cfg.MaxConns)
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(context.Background())
	assert.Error(t, err)
}
