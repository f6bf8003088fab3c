package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/google/uuid"
)

type noteRepo struct{ s *Store }

func (r *noteRepo) Create(ctx context.Context, in repository.CreateNoteInput) (*repository.Note, error) {
	now := fromMillis(toMillis(r.s.now()))
	n := &repository.Note{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	const q = `INSERT INTO note (id, user_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.s.db.ExecContext(ctx, q, n.ID, n.UserID, n.Title, n.Content, toMillis(now), toMillis(now)); err != nil {
		return nil, fmt.Errorf("sqlite: insert note: %w", err)
	}
	return n, nil
}

func (r *noteRepo) ListByOwner(ctx context.Context, ownerID string) ([]repository.Note, error) {
	const q = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM note
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`
	rows, err := r.s.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list notes: %w", err)
	}
	defer rows.Close()

	out := []repository.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan note: %w", err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list notes: %w", err)
	}
	return out, nil
}

func (r *noteRepo) Get(ctx context.Context, ownerID, id string) (*repository.Note, error) {
	const q = `SELECT id, user_id, title, content, created_at, updated_at FROM note WHERE id = ? AND user_id = ?`
	n, err := scanNote(r.s.db.QueryRowContext(ctx, q, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get note: %w", err)
	}
	return n, nil
}

func (r *noteRepo) Update(ctx context.Context, ownerID, id string, in repository.UpdateNoteInput) error {
	const q = `
		UPDATE note
		SET title = COALESCE(?, title), content = COALESCE(?, content), updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.s.db.ExecContext(ctx, q, nullable(in.Title), nullable(in.Content), toMillis(r.s.now()), id, ownerID)
	if err != nil {
		return fmt.Errorf("sqlite: update note: %w", err)
	}
	return affectedOne(res)
}

func (r *noteRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM note WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("sqlite: delete note: %w", err)
	}
	return affectedOne(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*repository.Note, error) {
	var n repository.Note
	var created, updated int64
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &created, &updated); err != nil {
		return nil, err
	}
	n.CreatedAt = fromMillis(created)
	n.UpdatedAt = fromMillis(updated)
	return &n, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
