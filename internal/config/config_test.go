package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[storage]
driver = "memory"

[booking]
timezone = "Europe/Sofia"
max_range_days = 14

[redis]
enabled = true
addr = "cache:6379"
schedule_ttl = 60
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 14, cfg.Booking.MaxRangeDays)
	assert.Equal(t, 60, cfg.Booking.DefaultGranularityMinutes)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, int64(60), int64(cfg.Redis.ScheduleTTLDuration().Seconds()))

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Sofia", loc.String())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown driver", data: "[storage]\ndriver = \"mongo\""},
		{name: "bad timezone", data: "[booking]\ntimezone = \"Mars/Base\""},
		{name: "granularity too small", data: "[booking]\ndefault_granularity_minutes = 1"},
		{name: "negative range", data: "[booking]\nmax_range_days = -1"},
		{name: "bad port", data: "[server]\nhttp_port = 0"},
		{name: "rate limit without values", data: "[rate_limit]\nenabled = true\nrequests_per_minute = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_PASSWORD", "redis-secret")

	cfg, err := Load("missing.toml")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "redis-secret", cfg.Redis.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
