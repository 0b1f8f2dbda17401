package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_NAME", "bulletin.db")
	t.Setenv("DATABASE_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "15")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "bulletin.db", cfg.Database.Name)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestMasked(t *testing.T) {
	cfg := Config{}
	cfg.Database.Password = "pw"
	cfg.JWT.Secret = "secret"

	m := cfg.Masked()
	assert.Equal(t, "***", m.Database.Password)
	assert.Equal(t, "***", m.JWT.Secret)
	assert.Empty(t, m.Redis.Password)
	assert.Equal(t, "pw", cfg.Database.Password, "original must not change")
}
