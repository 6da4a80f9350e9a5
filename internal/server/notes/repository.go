// Package notes holds the dev server's in-memory note collection. It exists
// so the CLI can be exercised end to end without a real note service; nothing
// survives a restart.
package notes

import (
	"sync"

	"github.com/google/uuid"
	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/common"
	"github.com/notezapp/notez/internal/timex"
)

type Repository struct {
	mu    sync.Mutex
	notes []*models.Note
}

func NewRepository() *Repository {
	return &Repository{notes: []*models.Note{}}
}

// List returns copies of all notes, pinned first, then most recently updated.
func (r *Repository) List() []*models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Note, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Clone())
	}
	models.SortForDisplay(out)
	return out
}

func (r *Repository) Get(id string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.findLocked(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return n.Clone(), nil
}

// Create assigns an id and timestamps. An empty title becomes the default.
func (r *Repository) Create(draft models.Draft) *models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	title := draft.Title
	if title == "" {
		title = models.DefaultTitle
	}
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}

	now := timex.Now()
	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   draft.Content,
		Tags:      append([]string{}, tags...),
		Pinned:    draft.Pinned,
		UpdatedAt: now,
		CreatedAt: now,
	}
	r.notes = append(r.notes, note)
	return note.Clone()
}

func (r *Repository) Update(id string, patch models.Patch) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.findLocked(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(n)
	n.UpdatedAt = timex.Now()
	return n.Clone(), nil
}

func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.notes {
		if n.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *Repository) TogglePin(id string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.findLocked(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	n.Pinned = !n.Pinned
	n.UpdatedAt = timex.Now()
	return n.Clone(), nil
}

// AddTag appends the tag unless the note already carries it.
func (r *Repository) AddTag(id string, tag string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.findLocked(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !n.HasTag(tag) {
		n.Tags = append(n.Tags, tag)
		n.UpdatedAt = timex.Now()
	}
	return n.Clone(), nil
}

func (r *Repository) RemoveTag(id string, tag string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.findLocked(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	for i, t := range n.Tags {
		if t == tag {
			n.Tags = append(n.Tags[:i], n.Tags[i+1:]...)
			n.UpdatedAt = timex.Now()
			break
		}
	}
	return n.Clone(), nil
}

func (r *Repository) findLocked(id string) (*models.Note, bool) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}
