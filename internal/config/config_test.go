package config_test

import (
	"testing"
	"time"

	"github.com/database-playground/account-eraser/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"FIREBASE_PROJECT_ID": "demo-project",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, config.StoreBackendFirestore, cfg.Store.Backend)
	assert.Equal(t, "(default)", cfg.Firebase.DatabaseID)
	assert.Equal(t, config.VerifierFirebase, cfg.Auth.Verifier)
	assert.Equal(t, 5*time.Minute, cfg.Auth.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.PostHog.Enabled())
	assert.Equal(t, config.ExporterNone, cfg.OTel.Exporter)

	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"PORT":             "9090",
		"ALLOWED_ORIGINS":  "https://a.example,https://b.example",
		"STORE_BACKEND":    "memory",
		"AUTH_VERIFIER":    "hmac",
		"AUTH_HMAC_SECRET": "0123456789abcdef0123456789abcdef",
		"AUTH_CACHE_TTL":   "30s",
		"REDIS_HOST":       "localhost",
		"POSTHOG_API_KEY":  "phc_test",
		"OTEL_EXPORTER":    "stdout",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Auth.CacheTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.True(t, cfg.PostHog.Enabled())
	assert.False(t, cfg.NeedsFirebase())

	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_BadValue(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{"PORT": "eighty"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		cfg, err := config.LoadFrom(map[string]string{"FIREBASE_PROJECT_ID": "demo-project"})
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"missing project", func(c *config.Config) { c.Firebase.ProjectID = "" }, "FIREBASE_PROJECT_ID"},
		{"bad backend", func(c *config.Config) { c.Store.Backend = "mysql" }, "STORE_BACKEND"},
		{"bad verifier", func(c *config.Config) { c.Auth.Verifier = "none" }, "AUTH_VERIFIER"},
		{"short hmac secret", func(c *config.Config) { c.Auth.Verifier = config.VerifierHMAC; c.Auth.HMACSecret = "short" }, "AUTH_HMAC_SECRET"},
		{"bad exporter", func(c *config.Config) { c.OTel.Exporter = "zipkin" }, "OTEL_EXPORTER"},
		{"bad port", func(c *config.Config) { c.Port = 0 }, "PORT"},
		{"redis without port", func(c *config.Config) { c.Redis.Host = "localhost"; c.Redis.Port = 0 }, "REDIS_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"STORE_BACKEND": "mysql",
		"OTEL_EXPORTER": "zipkin",
	})
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
	assert.Contains(t, err.Error(), "OTEL_EXPORTER")
	assert.Contains(t, err.Error(), "FIREBASE_PROJECT_ID")
}
