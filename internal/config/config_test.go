package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "dev", c.App.Env)
	require.Equal(t, "memory", c.Storage.Driver)
	require.Equal(t, "bcrypt", c.Security.Password.Algorithm)
	require.Equal(t, 30*24*time.Hour, Duration(c.JWT.TTL, 0))
	require.True(t, c.UsesDevSecret())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	p := writeYAML(t, `
app:
  env: staging
storage:
  driver: sqlite
  sqlite:
    path: /tmp/a.db
jwt:
  ttl: 48h
`)
	t.Setenv("SQLITE_PATH", "/tmp/b.db")
	t.Setenv("JWT_SECRET_KEY", "from-env")

	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "staging", c.App.Env)
	require.Equal(t, "sqlite", c.Storage.Driver)
	require.Equal(t, "/tmp/b.db", c.Storage.SQLite.Path)
	require.Equal(t, "from-env", c.JWT.Secret)
	require.Equal(t, 48*time.Hour, Duration(c.JWT.TTL, 0))
}

func TestLoad_ProdRequiresRealSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	_, err := Load("")
	require.ErrorContains(t, err, "JWT_SECRET_KEY is required")

	t.Setenv("JWT_SECRET_KEY", DevJWTSecret)
	_, err = Load("")
	require.ErrorContains(t, err, "development default")

	t.Setenv("JWT_SECRET_KEY", "short")
	_, err = Load("")
	require.ErrorContains(t, err, "at least 32 bytes")

	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	c, err := Load("")
	require.NoError(t, err)
	require.False(t, c.UsesDevSecret())
}

func TestValidate_RejectsUnknownDrivers(t *testing.T) {
	p := writeYAML(t, `
storage:
  driver: mongo
cache:
  kind: memcached
security:
  password:
    algorithm: md5
`)
	_, err := Load(p)
	require.Error(t, err)
	require.ErrorContains(t, err, `storage.driver "mongo"`)
	require.ErrorContains(t, err, `cache.kind "memcached"`)
	require.ErrorContains(t, err, `algorithm "md5"`)
}

func TestValidate_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := Load("")
	require.ErrorContains(t, err, "storage.dsn is required")
}

func TestValidate_BadDuration(t *testing.T) {
	t.Setenv("JWT_TTL", "thirty days")
	_, err := Load("")
	require.ErrorContains(t, err, "jwt.ttl")
}
