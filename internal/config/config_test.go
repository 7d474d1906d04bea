package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Data:      DataConfig{BasePath: "/some/path"},
		Auth:      AuthConfig{AccessTokenDuration: time.Hour},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 10, Burst: 20},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"zero rps", func(c *Config) { c.RateLimit.RPS = 0 }},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"zero token duration", func(c *Config) { c.Auth.AccessTokenDuration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_DisabledRateLimitIgnoresValues(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

// unsetEnv removes keys for the duration of the test. Values the .env loader
// sets are rolled back by the t.Setenv cleanup.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load([]string{"-data-path", dir, "-env-file", filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 720*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.Data.CachePath)
	assert.Equal(t, filepath.Join(dir, "remote.db"), cfg.Data.RemoteDBPath)
	assert.Equal(t, filepath.Join(dir, "auth.key"), cfg.Auth.KeyPath)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20.0, cfg.RateLimit.RPS)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "SERVER_PORT=7000\nLOG_LEVEL=debug\nCORS_ORIGINS=https://a.example, https://b.example\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("LOG_LEVEL", "warn")
	unsetEnv(t, "SERVER_PORT", "CORS_ORIGINS")

	cfg, err := Load([]string{
		"-data-path", dir,
		"-env-file", envFile,
		"-port", "9090",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)  // flag beats .env
	assert.Equal(t, "warn", cfg.Logger.Level) // env beats .env
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()

	_, err := Load([]string{"-data-path", dir, "-env-file", filepath.Join(dir, "x"), "-read-timeout", "soon"})
	assert.ErrorContains(t, err, "read timeout")
}

func TestLoad_ExplicitPathsWin(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "elsewhere", "cache")

	cfg, err := Load([]string{"-data-path", dir, "-cache-path", cache, "-env-file", filepath.Join(dir, "x")})
	require.NoError(t, err)
	assert.Equal(t, cache, cfg.Data.CachePath)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/books", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "books"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b ,"))
	assert.Nil(t, splitList(""))
}
