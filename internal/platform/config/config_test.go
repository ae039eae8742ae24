package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/hydration")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 250, cfg.AvatarSize)
	assert.Equal(t, int64(5<<20), cfg.AvatarMaxBytes)
	assert.Equal(t, "5-M", cfg.AuthRateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.NotEqual(t, cfg.JWTSecret, cfg.RefreshTokenSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("FRONTEND_BASE_URL", "https://app.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, minBcryptCost, cfg.BcryptCost)
	assert.Equal(t, "https://app.example.com", cfg.FrontendBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}
