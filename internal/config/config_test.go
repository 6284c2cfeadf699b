package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "Javi", cfg.LoginIdentity)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TrustProxy)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOKEN_TTL", "90s")
	t.Setenv("LOGIN_IDENTITY", "Ana")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
	assert.Equal(t, "Ana", cfg.LoginIdentity)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.TrustProxy)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 4000\nlogin_identity: Luis\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "Luis", cfg.LoginIdentity)

	t.Setenv("PORT", "5000")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port, "environment overrides file")
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"JWT_SECRET": "tooshort"}},
		{"bad port", map[string]string{"JWT_SECRET": testSecret, "PORT": "999999"}},
		{"bad log level", map[string]string{"JWT_SECRET": testSecret, "LOG_LEVEL": "loud"}},
		{"zero ttl", map[string]string{"JWT_SECRET": testSecret, "TOKEN_TTL": "0s"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
