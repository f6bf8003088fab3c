// Package memory keeps users and notes in process memory. Intended for
// development and tests; the email index behaves like a unique constraint.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu      sync.RWMutex
	users   map[string]repository.User
	byEmail map[string]string
	notes   map[string]noteEntry
	seq     uint64
	now     func() time.Time
}

type noteEntry struct {
	repository.Note
	seq uint64
}

func New() *Store {
	return &Store{
		users:   map[string]repository.User{},
		byEmail: map[string]string{},
		notes:   map[string]noteEntry{},
		now:     time.Now,
	}
}

func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }
func (s *Store) Notes() repository.NoteRepository { return (*noteRepo)(s) }
func (s *Store) Ping(context.Context) error       { return nil }
func (s *Store) Close() error                     { return nil }

// ---------------------------------------------------------------------------
// users
// ---------------------------------------------------------------------------

type userRepo Store

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[in.Email]; taken {
		return nil, repository.ErrConflict
	}
	u := repository.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    r.now().UTC(),
	}
	r.users[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// notes
// ---------------------------------------------------------------------------

type noteRepo Store

func (r *noteRepo) Create(ctx context.Context, in repository.CreateNoteInput) (*repository.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	r.seq++
	n := repository.Note{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.notes[n.ID] = noteEntry{Note: n, seq: r.seq}
	return &n, nil
}

func (r *noteRepo) ListByOwner(ctx context.Context, ownerID string) ([]repository.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := make([]noteEntry, 0)
	for _, e := range r.notes {
		if e.UserID == ownerID {
			entries = append(entries, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})
	out := make([]repository.Note, len(entries))
	for i, e := range entries {
		out[i] = e.Note
	}
	return out, nil
}

func (r *noteRepo) Get(ctx context.Context, ownerID, id string) (*repository.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.notes[id]
	if !ok || e.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	n := e.Note
	return &n, nil
}

func (r *noteRepo) Update(ctx context.Context, ownerID, id string, in repository.UpdateNoteInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.notes[id]
	if !ok || e.UserID != ownerID {
		return repository.ErrNotFound
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Content != nil {
		e.Content = *in.Content
	}
	e.UpdatedAt = r.now().UTC()
	r.notes[id] = e
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.notes[id]
	if !ok || e.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}
