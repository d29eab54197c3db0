package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
env: dev
http_server:
  address: ":9090"
  read_timeout: 5s
jwt:
  secret: test-secret
  issuer: billing-backend
  audience: billing-clients
  access_token_ttl_minutes: 15
  refresh_token_ttl_minutes: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":9090", cfg.HTTPServer.Address)
	require.Equal(t, 5*time.Second, cfg.HTTPServer.ReadTimeout)
	require.Equal(t, "test-secret", cfg.JWT.Secret)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenValidity())
	require.Equal(t, 2*time.Hour, cfg.JWT.RefreshTokenValidity())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestLoad_MissingRequiredSetting(t *testing.T) {
	// No jwt block at all: secret, issuer, audience and lifetimes are
	// env-required, so loading must fail.
	path := writeConfigFile(t, `
env: dev
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing config")
		}
	}()
	MustLoad("/nonexistent/config.yaml")
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_ISSUER", "iss")
	t.Setenv("JWT_AUDIENCE", "aud")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "5")
	t.Setenv("JWT_REFRESH_TTL_MINUTES", "60")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "env-secret", cfg.JWT.Secret)
	require.Equal(t, ":8080", cfg.HTTPServer.Address)
}
