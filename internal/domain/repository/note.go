package repository

import (
	"context"
	"time"
)

// Note is a user-owned study note.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateNoteInput struct {
	UserID  string
	Title   string
	Content string
}

// UpdateNoteInput leaves a field untouched when its pointer is nil.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

// NoteRepository is owner scoped: every lookup filters by note ID and
// owner ID together, and a note owned by someone else is ErrNotFound.
type NoteRepository interface {
	Create(ctx context.Context, in CreateNoteInput) (*Note, error)
	// ListByOwner returns the owner's notes, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Note, error)
	Get(ctx context.Context, ownerID, id string) (*Note, error)
	Update(ctx context.Context, ownerID, id string, in UpdateNoteInput) error
	Delete(ctx context.Context, ownerID, id string) error
}
