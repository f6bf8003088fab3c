// Package notes holds the request and response bodies of the note endpoints.
package notes

import "time"

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest leaves absent fields unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteResponse struct {
	Message string `json:"message"`
	NoteID  string `json:"note_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
