package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "vidstream", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.MailSendEnabled)
}

func TestCookieSecure(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", false},
		{"staging", false},
		{"production", true},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			c := &Config{Env: tt.env}
			assert.Equal(t, tt.want, c.CookieSecure())
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "vidstream",
		DBSSLMode:  "require",
	}
	assert.Equal(t, "postgres://app:pw@db.internal:5433/vidstream?sslmode=require", c.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	c := &Config{CORSAllowedOrigins: "https://a.example.com, https://b.example.com ,"}
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, c.CORSOrigins())

	c = &Config{CORSAllowedOrigins: ""}
	assert.Empty(t, c.CORSOrigins())
}
