package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/config"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("SERVER_PORT=9090\nAPP_TIMEZONE=Asia/Jakarta\n"), 0o600))

	for _, key := range []string{"SERVER_PORT", "APP_TIMEZONE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	t.Setenv("APP_SEARCH_PRICE_MAX", "500")

	cfg, err := config.Load(file)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone)
	assert.InDelta(t, 500.0, cfg.App.Search.PriceMax, 0)
	assert.Equal(t, "reservation.events", cfg.Kafka.Topics.Reservation)
	assert.Equal(t, 3600, cfg.Worker.SweepIntervalSeconds)
	assert.Equal(t, 10, cfg.DB.Postgres.MaxOpenConns)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("SERVER_ENV", "development")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.Server.Env = "production"
		cfg.JWT.AccessSecret = "a"
		cfg.JWT.RefreshSecret = "r"
		cfg.DB.Postgres.Write.Host = "db"

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "development skips checks", mutate: func(c *config.Config) {
			c.Server.Env = "development"
			c.JWT.AccessSecret = ""
		}},
		{name: "missing secret", mutate: func(c *config.Config) { c.JWT.RefreshSecret = "" }, wantErr: "JWT_ACCESS_SECRET"},
		{name: "shared secret", mutate: func(c *config.Config) { c.JWT.RefreshSecret = "a" }, wantErr: "must differ"},
		{name: "missing database", mutate: func(c *config.Config) { c.DB.Postgres.Write.Host = "" }, wantErr: "DB_POSTGRES_WRITE_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
