// Package httpapi exposes the dev server's note collection over the same
// REST surface the real note service speaks, so the CLI can run against it
// unchanged.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/common"
	"github.com/notezapp/notez/internal/server/notes"
)

type NoteHandler struct {
	repo     *notes.Repository
	validate *validator.Validate
}

func NewNoteHandler(repo *notes.Repository) *NoteHandler {
	return &NoteHandler{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.repo.List())
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.repo.Get(mux.Vars(r)["noteId"])
	if err != nil {
		h.notFound(w, err)
		return
	}
	writeData(w, http.StatusOK, note)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeData(w, http.StatusCreated, h.repo.Create(draft))
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if patch.Title != nil && len(*patch.Title) > 255 {
		writeError(w, http.StatusBadRequest, "title too long")
		return
	}

	note, err := h.repo.Update(mux.Vars(r)["noteId"], patch)
	if err != nil {
		h.notFound(w, err)
		return
	}
	writeData(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(mux.Vars(r)["noteId"]); err != nil {
		h.notFound(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *NoteHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	note, err := h.repo.TogglePin(mux.Vars(r)["noteId"])
	if err != nil {
		h.notFound(w, err)
		return
	}
	writeData(w, http.StatusOK, note)
}

type tagRequest struct {
	Tag string `json:"tag" validate:"required,max=64"`
}

func (h *NoteHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.repo.AddTag(mux.Vars(r)["noteId"], req.Tag)
	if err != nil {
		h.notFound(w, err)
		return
	}
	writeData(w, http.StatusOK, note)
}

func (h *NoteHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		writeError(w, http.StatusBadRequest, "missing tag parameter")
		return
	}

	note, err := h.repo.RemoveTag(mux.Vars(r)["noteId"], tag)
	if err != nil {
		h.notFound(w, err)
		return
	}
	writeData(w, http.StatusOK, note)
}

func (h *NoteHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NoteHandler) notFound(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
