package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "user-accounts", cfg.AppName)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.False(t, cfg.SearchEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "6h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 6*time.Hour, cfg.AccessTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "accounts", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/accounts?sslmode=disable", cfg.PostgresDSN())
}
