package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestConfigCommand_RedactsSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "super-secret-value")
	t.Setenv("STORAGE_DRIVER", "memory")

	out := run(t, "config")
	require.Contains(t, out, "<redacted>")
	require.NotContains(t, out, "super-secret-value")
}

func TestMigrateStatus_SQLite(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	out := run(t, "migrate", "status")
	require.Contains(t, out, "00001_app_user.sql")
	require.Contains(t, out, "true")
}
