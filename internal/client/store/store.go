// Package store owns the canonical in-memory note collection and the
// selected note. It mediates between the remote note service and the durable
// local cache: every mutation goes to the service first, falls back to a
// local-only change when the service is unreachable, and mirrors the result
// into the cache. Concurrent updates to the same note are sequenced so that
// a slow response can never clobber the result of a later call.
//
// None of the mutation methods return errors: failures are logged and
// absorbed into the per-operation fallback, so callers never need recovery
// logic of their own.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/notezapp/notez/internal/client/client"
	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/client/repositories/cache"
	"github.com/notezapp/notez/internal/cryptox"
	"github.com/notezapp/notez/internal/logging"
	"github.com/notezapp/notez/internal/timex"
)

// Persisted cache keys. The values are the JSON-serialized note collection
// and the JSON-serialized selected note (absent when nothing is selected).
const (
	notesKey    = "notes"
	selectedKey = "selectedNote"
)

// localIDPrefix marks ids assigned locally while the service was down; the
// service never issues ids of this shape.
const localIDPrefix = "local-"

type Store struct {
	client client.Client
	cache  cache.Repository
	log    logging.Logger

	mu       sync.Mutex
	notes    []*models.Note
	selected *models.Note
	// seq maps note id to the sequence number of the most recently issued
	// update call; resolutions carrying an older number are discarded.
	seq map[string]uint64
}

func New(c client.Client, cache cache.Repository, log logging.Logger) *Store {
	return &Store{
		client: c,
		cache:  cache,
		log:    log,
		notes:  []*models.Note{},
		seq:    make(map[string]uint64),
	}
}

// Load populates the canonical list from the note service, or from the local
// cache when the service is unreachable. The persisted selection is restored
// in either case and re-resolved against the loaded collection.
func (s *Store) Load(ctx context.Context) {
	remote, err := s.client.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.notes = make([]*models.Note, 0, len(remote))
		for _, n := range remote {
			nn := n.Clone()
			if nn.Tags == nil {
				nn.Tags = []string{}
			}
			s.notes = append(s.notes, nn)
		}
		s.restoreSelectionLocked(ctx)
		s.mirrorLocked(ctx)
		return
	}

	s.log.Warn(ctx, "note service unavailable, loading cached notes", "error", err)

	data, cerr := s.cache.Get(ctx, notesKey)
	if cerr != nil {
		s.log.Error(ctx, "failed to read cached notes", "error", cerr)
	} else if data != nil {
		notes, derr := models.DecodeCachedNotes(data)
		if derr != nil {
			s.log.Error(ctx, "failed to decode cached notes", "error", derr)
		} else {
			s.notes = notes
		}
	}
	s.restoreSelectionLocked(ctx)
}

func (s *Store) restoreSelectionLocked(ctx context.Context) {
	s.selected = nil

	data, err := s.cache.Get(ctx, selectedKey)
	if err != nil {
		s.log.Error(ctx, "failed to read cached selection", "error", err)
		return
	}
	if data == nil {
		return
	}

	stored, err := models.DecodeCachedNote(data)
	if err != nil {
		s.log.Error(ctx, "failed to decode cached selection", "error", err)
		return
	}

	// Prefer the in-store copy so the selection never points at a stale
	// snapshot of a note we just loaded.
	if current, ok := s.findLocked(stored.ID); ok {
		s.selected = current
		return
	}
	s.selected = stored
}

// Notes returns a snapshot of the canonical collection. The returned notes
// are deep copies; callers sort them for display themselves.
func (s *Store) Notes() []*models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.Clone())
	}
	return out
}

// Selected returns a copy of the currently selected note, or nil.
func (s *Store) Selected() *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Clone()
}

// SetSelected selects the note with the given id. It reports whether the
// note exists in the collection.
func (s *Store) SetSelected(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.findLocked(id)
	if !ok {
		return false
	}
	s.selected = note
	s.mirrorLocked(ctx)
	return true
}

// ClearSelected drops the selection.
func (s *Store) ClearSelected(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.mirrorLocked(ctx)
}

// Add creates a note from the draft. On service failure the draft is kept as
// a local-only note under a placeholder id until a future sync. The
// resulting note is returned so the caller can select it; nil is returned
// only when the draft fails validation.
func (s *Store) Add(ctx context.Context, draft models.Draft) *models.Note {
	if err := models.ValidateDraft(draft); err != nil {
		s.log.Warn(ctx, "rejecting invalid note draft", "error", err)
		return nil
	}

	created, err := s.client.Create(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	var note *models.Note
	if err != nil {
		s.log.Warn(ctx, "note service create failed, keeping note locally", "error", err)
		now := timex.Now()
		note = &models.Note{
			ID:        localIDPrefix + uuid.NewString(),
			Title:     draft.Title,
			Content:   draft.Content,
			Tags:      append([]string{}, draft.Tags...),
			Pinned:    draft.Pinned,
			UpdatedAt: now,
			CreatedAt: now,
		}
	} else {
		note = created.Clone()
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}

	s.notes = append([]*models.Note{note}, s.notes...)
	s.mirrorLocked(ctx)
	return note.Clone()
}

// Update merges the patch into the note with the given id. Calls may overlap
// (the editing surface issues them on a debounce timer); the canonical state
// always reflects the most recently issued call, never the most recently
// resolved one. A resolution that has been superseded is discarded entirely.
func (s *Store) Update(ctx context.Context, id string, patch models.Patch) {
	s.mu.Lock()
	if _, ok := s.findLocked(id); !ok {
		s.mu.Unlock()
		s.log.Debug(ctx, "update for unknown note ignored", "note_id", id)
		return
	}
	s.seq[id]++
	issued := s.seq[id]
	s.mu.Unlock()

	updated, err := s.client.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq[id] != issued {
		s.log.Debug(ctx, "discarding superseded update resolution",
			"note_id", id, "issued", issued, "latest", s.seq[id])
		return
	}

	current, ok := s.findLocked(id)
	if !ok {
		// deleted while the call was in flight
		return
	}

	var next *models.Note
	if err != nil {
		s.log.Warn(ctx, "note service update failed, applying locally", "note_id", id, "error", err)
		next = current.Clone()
		patch.Apply(next)
		next.UpdatedAt = timex.Now()
	} else {
		next = updated.Clone()
		if next.Tags == nil {
			next.Tags = []string{}
		}
	}

	s.replaceLocked(next)
	s.mirrorLocked(ctx)
}

// Delete removes the note locally no matter what the service says: delete is
// best-effort and idempotent, and redisplaying a note the user asked to
// remove is worse than a dangling remote record. A selected note being
// deleted clears the selection.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	removed := false
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			removed = true
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	delete(s.seq, id)
	if removed {
		s.mirrorLocked(ctx)
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	if err := s.client.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "note service delete failed, note removed locally", "note_id", id, "error", err)
	}
}

// TogglePin flips the pinned flag. On success the service's authoritative
// copy replaces the canonical entry; on failure the flag is flipped locally.
func (s *Store) TogglePin(ctx context.Context, id string) {
	s.mu.Lock()
	if _, ok := s.findLocked(id); !ok {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	updated, err := s.client.TogglePin(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.findLocked(id)
	if !ok {
		return
	}

	var next *models.Note
	if err != nil {
		s.log.Warn(ctx, "note service pin toggle failed, flipping locally", "note_id", id, "error", err)
		next = current.Clone()
		next.Pinned = !next.Pinned
		next.UpdatedAt = timex.Now()
	} else {
		next = updated.Clone()
		if next.Tags == nil {
			next.Tags = []string{}
		}
	}

	s.replaceLocked(next)
	s.mirrorLocked(ctx)
}

// AddTag adds a tag to the note. Tags form a set: adding a tag that is
// already present is a no-op, remotely and locally.
func (s *Store) AddTag(ctx context.Context, id string, tag string) {
	if err := models.ValidateTag(tag); err != nil {
		s.log.Warn(ctx, "rejecting invalid tag", "error", err)
		return
	}

	s.mu.Lock()
	if _, ok := s.findLocked(id); !ok {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	updated, err := s.client.AddTag(ctx, id, tag)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.findLocked(id)
	if !ok {
		return
	}

	var next *models.Note
	if err != nil {
		s.log.Warn(ctx, "note service add-tag failed, applying locally", "note_id", id, "error", err)
		if current.HasTag(tag) {
			return
		}
		next = current.Clone()
		next.Tags = append(next.Tags, tag)
	} else {
		next = updated.Clone()
		if next.Tags == nil {
			next.Tags = []string{}
		}
	}

	s.replaceLocked(next)
	s.mirrorLocked(ctx)
}

// RemoveTag removes a tag from the note, falling back to a local removal
// when the service is unreachable.
func (s *Store) RemoveTag(ctx context.Context, id string, tag string) {
	s.mu.Lock()
	if _, ok := s.findLocked(id); !ok {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	updated, err := s.client.RemoveTag(ctx, id, tag)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.findLocked(id)
	if !ok {
		return
	}

	var next *models.Note
	if err != nil {
		s.log.Warn(ctx, "note service remove-tag failed, applying locally", "note_id", id, "error", err)
		next = current.Clone()
		tags := next.Tags[:0]
		for _, t := range next.Tags {
			if t != tag {
				tags = append(tags, t)
			}
		}
		next.Tags = tags
	} else {
		next = updated.Clone()
		if next.Tags == nil {
			next.Tags = []string{}
		}
	}

	s.replaceLocked(next)
	s.mirrorLocked(ctx)
}

// EncryptNote seals the note's {title, content} pair under the passphrase
// and rewrites the note with placeholder title and empty content. The real
// title becomes unrecoverable except by decryption.
func (s *Store) EncryptNote(ctx context.Context, id string, passphrase string) {
	s.mu.Lock()
	note, ok := s.findLocked(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	if note.IsEncrypted {
		s.mu.Unlock()
		s.log.Warn(ctx, "note is already encrypted", "note_id", id)
		return
	}
	payload, err := json.Marshal(models.EncryptedPayload{Title: note.Title, Content: note.Content})
	s.mu.Unlock()
	if err != nil {
		s.log.Error(ctx, "failed to serialize note for encryption", "note_id", id, "error", err)
		return
	}

	sealed, err := cryptox.Seal(payload, passphrase)
	if err != nil {
		s.log.Error(ctx, "failed to encrypt note", "note_id", id, "error", err)
		return
	}

	title := models.EncryptedTitle
	content := ""
	encrypted := true
	s.Update(ctx, id, models.Patch{
		Title:            &title,
		Content:          &content,
		IsEncrypted:      &encrypted,
		EncryptedContent: &sealed,
	})
}

// DecryptNote attempts to unlock the note with the passphrase. It returns
// false and mutates nothing when the passphrase is wrong, the ciphertext is
// corrupt, or the recovered payload does not parse. On success the original
// title and content are restored and true is returned (even if the service
// call behind the restoring update had to fall back to a local write).
func (s *Store) DecryptNote(ctx context.Context, id string, passphrase string) bool {
	s.mu.Lock()
	note, ok := s.findLocked(id)
	if !ok || !note.IsEncrypted || note.EncryptedContent == "" {
		s.mu.Unlock()
		return false
	}
	sealed := note.EncryptedContent
	s.mu.Unlock()

	plain, err := cryptox.Open(sealed, passphrase)
	if err != nil {
		s.log.Debug(ctx, "note decryption failed", "note_id", id, "error", err)
		return false
	}

	var payload models.EncryptedPayload
	if err := json.Unmarshal(plain, &payload); err != nil {
		s.log.Debug(ctx, "decrypted payload does not parse", "note_id", id, "error", err)
		return false
	}

	encrypted := false
	cleared := ""
	s.Update(ctx, id, models.Patch{
		Title:            &payload.Title,
		Content:          &payload.Content,
		IsEncrypted:      &encrypted,
		EncryptedContent: &cleared,
	})
	return true
}

// findLocked returns the store-owned copy for id. Callers must hold s.mu.
func (s *Store) findLocked(id string) (*models.Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// replaceLocked swaps the canonical entry for next.ID with next, keeping the
// selection pointed at the fresh copy. Callers must hold s.mu.
func (s *Store) replaceLocked(next *models.Note) {
	for i, n := range s.notes {
		if n.ID == next.ID {
			s.notes[i] = next
			break
		}
	}
	if s.selected != nil && s.selected.ID == next.ID {
		s.selected = next
	}
}

// mirrorLocked writes the collection and the selection to the local cache in
// one transaction. Cache failures are logged and never surfaced: the cache
// is a best-effort mirror, not a second source of truth while the canonical
// list is live. Callers must hold s.mu.
func (s *Store) mirrorLocked(ctx context.Context) {
	data, err := json.Marshal(s.notes)
	if err != nil {
		s.log.Error(ctx, "failed to serialize notes for cache", "error", err)
		return
	}

	set := map[string][]byte{notesKey: data}
	var del []string
	if s.selected != nil {
		selData, err := json.Marshal(s.selected)
		if err != nil {
			s.log.Error(ctx, "failed to serialize selection for cache", "error", err)
			return
		}
		set[selectedKey] = selData
	} else {
		del = append(del, selectedKey)
	}

	if err := s.cache.Save(ctx, set, del); err != nil {
		s.log.Error(ctx, "failed to mirror notes to cache", "error", err)
	}
}
