package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2, cfg.DefaultCourts)
	assert.Equal(t, 12, cfg.SessionIdleHours)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_COURTS", "4")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/badminton")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 4, cfg.DefaultCourts)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, "postgres://u:p@db:5432/badminton", cfg.DSN())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DEFAULT_COURTS", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSNFromParts(t *testing.T) {
	cfg := Default()
	cfg.DBPassword = "secret"
	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=badminton port=5432 sslmode=disable",
		cfg.DSN())
}
