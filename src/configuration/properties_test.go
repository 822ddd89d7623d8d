package configuration

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := Parse(env.Options{Environment: map[string]string{
			"ASSETS_SERVER_URL": "https://assets.example.com/",
			"ASSETS_PROTOCOL":   "json",
		}})
		require.NoError(t, err)

		assert.Equal(t, "INFO", config.LogLevel)
		assert.Equal(t, "https://assets.example.com/", config.Assets.ServerURL)
		assert.Empty(t, config.Assets.AuthToken)
		assert.Equal(t, 30*time.Second, config.Assets.Timeout)
		assert.Equal(t, "8088", config.Server.Port)
		assert.Equal(t, []string{"http://localhost:3000"}, config.Server.AllowOrigins)
		assert.False(t, config.Server.Pprof)
		assert.Equal(t, "assets", config.S3.Bucket)
		assert.False(t, config.S3.Enabled())
		assert.False(t, config.Auth.Enabled())
	})

	t.Run("overrides", func(t *testing.T) {
		config, err := Parse(env.Options{Environment: map[string]string{
			"LOG_LEVEL":          "DEBUG",
			"ASSETS_SERVER_URL":  "https://assets.example.com/v1/",
			"ASSETS_AUTH_TOKEN":  "abc",
			"ASSETS_PROTOCOL":    "info",
			"ASSETS_AUTH_MODE":   "query",
			"ASSETS_TIMEOUT":     "5s",
			"HTTP_ALLOW_ORIGINS": "https://a.example.com,https://b.example.com",
			"HTTP_PPROF":         "true",
			"AUTH_HOST":          "https://issuer.example.com",
			"S3_HOST":            "s3.example.com:9000",
		}})
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", config.LogLevel)
		assert.Equal(t, "abc", config.Assets.AuthToken)
		assert.Equal(t, "query", config.Assets.AuthMode)
		assert.Equal(t, 5*time.Second, config.Assets.Timeout)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.Server.AllowOrigins)
		assert.True(t, config.Server.Pprof)
		assert.True(t, config.Auth.Enabled())
		assert.True(t, config.S3.Enabled())
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := Parse(env.Options{Environment: map[string]string{
			"ASSETS_PROTOCOL": "json",
		}})
		assert.Error(t, err)
	})
}
