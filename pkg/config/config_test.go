package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Padroes(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "erp-comercial", cfg.App.Name)
	assert.Equal(t, "ERP Comercial", cfg.App.StoreName)
	assert.Equal(t, "http://localhost:3000/signup", cfg.App.SignupURL)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_LeVariaveisDeAmbiente(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("DB_PORT", "abc")
	t.Setenv("INVITE_SIGNUP_URL", "https://erp.example.com/signup")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 5432, cfg.DB.Port, "valor inválido cai no padrão")
	assert.Equal(t, "https://erp.example.com/signup", cfg.App.SignupURL)
}

func TestLoad_ProducaoExigeSegredo(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestDBConfig_DSNEscapaSenha(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "erp", Password: "p@ss/1", DBName: "erp", SSLMode: "disable"}
	assert.Equal(t, "postgres://erp:p%40ss%2F1@db:5432/erp?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
