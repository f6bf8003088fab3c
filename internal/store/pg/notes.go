package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type noteRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

const noteColumns = `id::text, user_id::text, title, content, created_at, updated_at`

func (r *noteRepo) Create(ctx context.Context, in repository.CreateNoteInput) (*repository.Note, error) {
	now := r.now().UTC()
	n := &repository.Note{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	const q = `
		INSERT INTO note (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`
	if _, err := r.pool.Exec(ctx, q, n.ID, n.UserID, n.Title, n.Content, now); err != nil {
		return nil, fmt.Errorf("pg: insert note: %w", err)
	}
	return n, nil
}

func (r *noteRepo) ListByOwner(ctx context.Context, ownerID string) ([]repository.Note, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return []repository.Note{}, nil
	}
	q := `SELECT ` + noteColumns + ` FROM note WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pg: list notes: %w", err)
	}
	defer rows.Close()

	out := []repository.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan note: %w", err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: list notes: %w", err)
	}
	return out, nil
}

func (r *noteRepo) Get(ctx context.Context, ownerID, id string) (*repository.Note, error) {
	if !validIDs(ownerID, id) {
		return nil, repository.ErrNotFound
	}
	q := `SELECT ` + noteColumns + ` FROM note WHERE id = $1 AND user_id = $2`
	n, err := scanNote(r.pool.QueryRow(ctx, q, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get note: %w", err)
	}
	return n, nil
}

func (r *noteRepo) Update(ctx context.Context, ownerID, id string, in repository.UpdateNoteInput) error {
	if !validIDs(ownerID, id) {
		return repository.ErrNotFound
	}
	const q = `
		UPDATE note
		SET title = COALESCE($3, title), content = COALESCE($4, content), updated_at = $5
		WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, ownerID, in.Title, in.Content, r.now().UTC())
	if err != nil {
		return fmt.Errorf("pg: update note: %w", err)
	}
	return affectedOne(tag)
}

func (r *noteRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !validIDs(ownerID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM note WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("pg: delete note: %w", err)
	}
	return affectedOne(tag)
}

func scanNote(row pgx.Row) (*repository.Note, error) {
	var n repository.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// validIDs keeps malformed ids from reaching a uuid column, where they
// would fail with 22P02 instead of simply not matching.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

func affectedOne(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
