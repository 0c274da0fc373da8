// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.API.BasePath)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "eshop", cfg.Database.Name)
	assert.Equal(t, 24, cfg.JWT.TokenTTL)
	assert.Equal(t, "/public/uploads", cfg.Uploads.PublicPath)
	assert.Equal(t, 20, cfg.RateLimit.GeneralRPS)
	assert.Equal(t, 5, cfg.RateLimit.AuthPerMinute)
	assert.Equal(t, 10, cfg.RateLimit.UploadPerMinute)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_URL", "/api/v2")
	t.Setenv("DB_NAME", "shopdb")
	t.Setenv("JWT_TOKEN_TTL", "48")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v2", cfg.API.BasePath)
	assert.Equal(t, "shopdb", cfg.Database.Name)
	assert.Equal(t, 48, cfg.JWT.TokenTTL)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateAcceptsCustomSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "a-real-production-secret")

	_, err := Load()
	assert.NoError(t, err)
}
