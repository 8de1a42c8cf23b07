package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "from-file"

[schedule]
timezone = "Europe/Moscow"
max_capacity = 3
last_available_rule = "start_slot_fills"

[redis]
enabled = true
addr = "redis:6379"
`)
	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvRedisPassword, "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Schedule.MaxCapacity)
	assert.Equal(t, 5*time.Second, cfg.Redis.LockTTL())
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	opts, err := cfg.Schedule.Options()
	require.NoError(t, err)
	assert.Equal(t, domain.LastAvailableStartSlot, opts.LastAvailableRule)
	assert.Equal(t, time.Hour, opts.BookingLead)
	require.NotNil(t, opts.DefaultHours)
	assert.Equal(t, "09:00", opts.DefaultHours.Start.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
[schedule]
last_available_rule = "sometimes"
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestScheduleOptions_NoDefaultHours(t *testing.T) {
	cfg := Default()
	cfg.Schedule.OpeningTime = ""
	cfg.Schedule.ClosingTime = ""

	opts, err := cfg.Schedule.Options()
	require.NoError(t, err)
	assert.Nil(t, opts.DefaultHours)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"port":        func(c *Config) { c.Server.HTTPPort = 0 },
		"database":    func(c *Config) { c.Database.DBName = "" },
		"capacity":    func(c *Config) { c.Schedule.MaxCapacity = 0 },
		"lead":        func(c *Config) { c.Schedule.BookingLeadMinutes = -1 },
		"timezone":    func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" },
		"hours order": func(c *Config) { c.Schedule.OpeningTime = "18:00"; c.Schedule.ClosingTime = "09:00" },
		"no closing":  func(c *Config) { c.Schedule.ClosingTime = "" },
		"retries":     func(c *Config) { c.Schedule.TxMaxRetries = -1 },
		"redis":       func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" },
		"catalog":     func(c *Config) { c.Catalog.URL = "" },
		"rate limit":  func(c *Config) { c.RateLimit.Burst = 0 },
		"cache ttl":   func(c *Config) { c.Cache.TTL = 0 },
	}

	require.NoError(t, Default().Validate())

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
