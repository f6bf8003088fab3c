// Package storetest is a contract suite every repository backend must pass.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/stretchr/testify/require"
)

// Backend is what a store under test exposes.
type Backend interface {
	Users() repository.UserRepository
	Notes() repository.NoteRepository
}

// Run executes the suite; open must return a fresh, empty backend.
func Run(t *testing.T, open func(t *testing.T) Backend) {
	t.Run("users/create_and_lookup", func(t *testing.T) { testUserLookup(t, open(t)) })
	t.Run("users/duplicate_email", func(t *testing.T) { testDuplicateEmail(t, open(t)) })
	t.Run("users/concurrent_registration", func(t *testing.T) { testConcurrentCreate(t, open(t)) })
	t.Run("notes/crud", func(t *testing.T) { testNoteCRUD(t, open(t)) })
	t.Run("notes/owner_scoping", func(t *testing.T) { testOwnerScoping(t, open(t)) })
	t.Run("notes/list_order", func(t *testing.T) { testListOrder(t, open(t)) })
}

func mustUser(t *testing.T, b Backend, email string) *repository.User {
	t.Helper()
	u, err := b.Users().Create(context.Background(), repository.CreateUserInput{
		Name: "user " + email, Email: email, PasswordHash: "$2a$12$hash",
	})
	require.NoError(t, err)
	return u
}

func testUserLookup(t *testing.T, b Backend) {
	ctx := context.Background()
	u := mustUser(t, b, "ann@example.com")
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	byEmail, err := b.Users().GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, "$2a$12$hash", byEmail.PasswordHash)

	byID, err := b.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", byID.Email)
	require.Equal(t, "user ann@example.com", byID.Name)

	_, err = b.Users().GetByEmail(ctx, "ANN@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = b.Users().GetByID(ctx, "8a1c0a6e-0000-4000-8000-000000000000")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = b.Users().GetByID(ctx, "not-an-id")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func testDuplicateEmail(t *testing.T, b Backend) {
	mustUser(t, b, "dup@example.com")
	_, err := b.Users().Create(context.Background(), repository.CreateUserInput{
		Name: "other", Email: "dup@example.com", PasswordHash: "x",
	})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func testConcurrentCreate(t *testing.T, b Backend) {
	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := b.Users().Create(context.Background(), repository.CreateUserInput{
				Name: fmt.Sprintf("racer %d", i), Email: "race@example.com", PasswordHash: "x",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case repository.IsConflict(err):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	require.Empty(t, others)
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflicts)
}

func testNoteCRUD(t *testing.T, b Backend) {
	ctx := context.Background()
	u := mustUser(t, b, "notes@example.com")

	n, err := b.Notes().Create(ctx, repository.CreateNoteInput{UserID: u.ID, Title: "Cells", Content: "mitosis"})
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)

	got, err := b.Notes().Get(ctx, u.ID, n.ID)
	require.NoError(t, err)
	require.Equal(t, "Cells", got.Title)
	require.Equal(t, "mitosis", got.Content)
	require.Equal(t, u.ID, got.UserID)

	title := "Cells II"
	require.NoError(t, b.Notes().Update(ctx, u.ID, n.ID, repository.UpdateNoteInput{Title: &title}))
	got, err = b.Notes().Get(ctx, u.ID, n.ID)
	require.NoError(t, err)
	require.Equal(t, "Cells II", got.Title)
	require.Equal(t, "mitosis", got.Content, "nil fields are left unchanged")

	require.NoError(t, b.Notes().Delete(ctx, u.ID, n.ID))
	_, err = b.Notes().Get(ctx, u.ID, n.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, b.Notes().Delete(ctx, u.ID, n.ID), repository.ErrNotFound)
}

func testOwnerScoping(t *testing.T, b Backend) {
	ctx := context.Background()
	alice := mustUser(t, b, "alice@example.com")
	bob := mustUser(t, b, "bob@example.com")

	n, err := b.Notes().Create(ctx, repository.CreateNoteInput{UserID: alice.ID, Title: "private"})
	require.NoError(t, err)

	_, err = b.Notes().Get(ctx, bob.ID, n.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	title := "stolen"
	require.ErrorIs(t, b.Notes().Update(ctx, bob.ID, n.ID, repository.UpdateNoteInput{Title: &title}), repository.ErrNotFound)
	require.ErrorIs(t, b.Notes().Delete(ctx, bob.ID, n.ID), repository.ErrNotFound)

	list, err := b.Notes().ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	got, err := b.Notes().Get(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	require.Equal(t, "private", got.Title)
}

func testListOrder(t *testing.T, b Backend) {
	ctx := context.Background()
	u := mustUser(t, b, "order@example.com")
	for _, title := range []string{"first", "second", "third"} {
		_, err := b.Notes().Create(ctx, repository.CreateNoteInput{UserID: u.ID, Title: title})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	list, err := b.Notes().ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Title)
	require.Equal(t, "first", list[2].Title)
}
