package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvRequiresJWTKey(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	cfg, err := FromEnv()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("SALT_ROUND", "")
	t.Setenv("APP_ENV", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.SaltRound)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("TOKEN_TTL_HOURS", "12")
	t.Setenv("SALT_ROUND", "not-a-number")
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.SaltRound, "unparsable ints fall back to the default")
	assert.True(t, cfg.IsProduction())
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := FromEnv()
	assert.Error(t, err)
}
