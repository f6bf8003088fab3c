package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/dropDatabas3/studyhub/internal/store/migrate"
	"github.com/dropDatabas3/studyhub/internal/store/storetest"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "studyhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Backend { return openTemp(t) })
}

func TestOpen_MigrationsApplied(t *testing.T) {
	s := openTemp(t)
	st, err := migrate.List(context.Background(), s.DB(), MigrationSource())
	require.NoError(t, err)
	require.Len(t, st, 2)
	for _, m := range st {
		require.True(t, m.Applied, m.Path)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studyhub.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, repository.CreateUserInput{
		Name: "Keep", Email: "keep@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	u, err := s.Users().GetByEmail(ctx, "keep@example.com")
	require.NoError(t, err)
	require.Equal(t, "keep@example.com", u.Email)
}
