package utils

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("JWT_EXPIRY_HOURS", "12")

	config, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", config.App.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.CORS.AllowedOrigins)
	assert.Equal(t, 12*time.Hour, config.JWT.Expiry())
	assert.Equal(t, 10, config.App.LoginRatePerMin)
	assert.Equal(t, "clubops:events", config.Redis.Channel)
}

func TestLoadConfigRequiresSecretOutsideDebug(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEBUG", "false")

	_, err := LoadConfig(viper.New())
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("DEBUG", "true")
	config, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.NotEmpty(t, config.JWT.Secret)
}
