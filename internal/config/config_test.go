package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/eventtickets")
	t.Setenv("JWT_SECRET", "a-very-long-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"ru", "fr"}, cfg.SupportedLanguages)
	assert.Equal(t, "ru", cfg.DefaultLanguage)
	assert.Equal(t, int64(100), cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "unused")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("JWT_SECRET", "a-very-long-test-secret")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDefaultLanguage(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/eventtickets")
	t.Setenv("JWT_SECRET", "a-very-long-test-secret")
	t.Setenv("SUPPORTED_LANGUAGES", "RU, fr ")
	t.Setenv("DEFAULT_LANGUAGE", "en")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_LANGUAGE")
}

func TestLoadConfigRejectsShortSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/eventtickets")
	t.Setenv("JWT_SECRET", "short")

	_, err := LoadConfig()
	assert.Error(t, err)
}
