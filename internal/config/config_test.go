package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestParse_ReleaseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{"GIN_MODE": "release"})
	require.NoError(t, err)

	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_ExplicitValues(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"DB_DRIVER":        "sqlite",
		"SQLITE_PATH":      "/tmp/lib.db",
		"DB_SSLMODE":       "verify-full",
		"RATE_LIMIT_RPS":   "2.5",
		"RATE_LIMIT_BURST": "4",
	})
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/lib.db", cfg.SQLitePath)
	assert.Equal(t, "verify-full", cfg.DBSSLMode)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestParse_RejectsUnknownDriver(t *testing.T) {
	_, err := Parse(map[string]string{"DB_DRIVER": "mongo"})
	assert.Error(t, err)
}

func TestParse_RejectsMalformedNumber(t *testing.T) {
	_, err := Parse(map[string]string{"RATE_LIMIT_RPS": "fast"})
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:    "db",
		DBPort:    "5433",
		DBUser:    "lib",
		DBPass:    "secret",
		DBName:    "catalog",
		DBSSLMode: "disable",
		TZ:        "UTC",
	}

	assert.Equal(t,
		"host=db user=lib password=secret dbname=catalog port=5433 sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
}
