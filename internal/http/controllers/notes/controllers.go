// Package notes holds the HTTP controllers of the note endpoints. Every
// handler runs behind the auth gate and receives the caller explicitly.
package notes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/studyhub/internal/http/dto/notes"
	httperrors "github.com/dropDatabas3/studyhub/internal/http/errors"
	"github.com/dropDatabas3/studyhub/internal/http/helpers"
	mw "github.com/dropDatabas3/studyhub/internal/http/middlewares"
	svc "github.com/dropDatabas3/studyhub/internal/http/services/notes"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// List handles GET /notes.
func (c *Controller) List(w http.ResponseWriter, r *http.Request, p mw.Principal) {
	list, err := c.service.List(r.Context(), p.UserID)
	if err != nil {
		httperrors.WriteError(w, mapNoteError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// Create handles POST /notes.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request, p mw.Principal) {
	var req dto.CreateNoteRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	id, err := c.service.Create(r.Context(), p.UserID, req)
	if err != nil {
		httperrors.WriteError(w, mapNoteError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.CreateNoteResponse{Message: "Note created successfully", NoteID: id})
}

// Get handles GET /notes/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request, p mw.Principal) {
	n, err := c.service.Get(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, mapNoteError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, n)
}

// Update handles PUT /notes/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request, p mw.Principal) {
	var req dto.UpdateNoteRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	if err := c.service.Update(r.Context(), p.UserID, chi.URLParam(r, "id"), req); err != nil {
		httperrors.WriteError(w, mapNoteError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Note updated successfully"})
}

// Delete handles DELETE /notes/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request, p mw.Principal) {
	if err := c.service.Delete(r.Context(), p.UserID, chi.URLParam(r, "id")); err != nil {
		httperrors.WriteError(w, mapNoteError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Note deleted successfully"})
}

func mapNoteError(err error) error {
	switch {
	case errors.Is(err, svc.ErrTitleRequired):
		return httperrors.ErrTitleRequired
	case errors.Is(err, svc.ErrNoteNotFound):
		return httperrors.ErrNoteNotFound
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}
