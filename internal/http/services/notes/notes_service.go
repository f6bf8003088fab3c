// Package notes implements the owner-scoped note operations. Every call
// takes the caller's user id; a note owned by someone else behaves exactly
// like a missing one.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	dto "github.com/dropDatabas3/studyhub/internal/http/dto/notes"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNoteNotFound  = errors.New("note not found or access denied")
	ErrStorage       = errors.New("storage failure")
)

type Service interface {
	List(ctx context.Context, userID string) ([]dto.NoteResponse, error)
	Create(ctx context.Context, userID string, in dto.CreateNoteRequest) (string, error)
	Get(ctx context.Context, userID, id string) (*dto.NoteResponse, error)
	Update(ctx context.Context, userID, id string, in dto.UpdateNoteRequest) error
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	notes repository.NoteRepository
}

func NewService(notes repository.NoteRepository) Service {
	return &service{notes: notes}
}

func toResponse(n *repository.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (s *service) List(ctx context.Context, userID string) ([]dto.NoteResponse, error) {
	list, err := s.notes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "List", err)
	}
	out := make([]dto.NoteResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, userID string, in dto.CreateNoteRequest) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", ErrTitleRequired
	}
	n, err := s.notes.Create(ctx, repository.CreateNoteInput{UserID: userID, Title: title, Content: in.Content})
	if err != nil {
		return "", s.fail(ctx, "Create", err)
	}
	return n.ID, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (*dto.NoteResponse, error) {
	n, err := s.notes.Get(ctx, userID, id)
	if err != nil {
		return nil, s.fail(ctx, "Get", err)
	}
	r := toResponse(n)
	return &r, nil
}

func (s *service) Update(ctx context.Context, userID, id string, in dto.UpdateNoteRequest) error {
	upd := repository.UpdateNoteInput{Content: in.Content}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return ErrTitleRequired
		}
		upd.Title = &title
	}
	if err := s.notes.Update(ctx, userID, id, upd); err != nil {
		return s.fail(ctx, "Update", err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if err := s.notes.Delete(ctx, userID, id); err != nil {
		return s.fail(ctx, "Delete", err)
	}
	return nil
}

func (s *service) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoteNotFound
	}
	logger.From(ctx).Error("note repository failed",
		logger.Layer("service"), logger.Component("notes"), logger.Op(op), logger.Err(err))
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
