// Package models defines the note entity shared by the store, the remote
// client, and the local cache, together with the draft/patch shapes used by
// mutation operations.
package models

import (
	"encoding/json"
	"sort"

	"github.com/notezapp/notez/internal/timex"
)

const (
	// DefaultTitle is filled in by the note service when a note is created
	// with an empty title.
	DefaultTitle = "Untitled"

	// EncryptedTitle replaces the real title while a note is locked. The
	// real title only exists inside the sealed payload.
	EncryptedTitle = "Encrypted Note"
)

// Note is the central entity. While IsEncrypted is true, Title and Content
// hold placeholders and EncryptedContent carries the sealed payload;
// otherwise EncryptedContent is empty.
type Note struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Content          string          `json:"content"`
	Tags             []string        `json:"tags"`
	Pinned           bool            `json:"pinned"`
	IsEncrypted      bool            `json:"isEncrypted"`
	EncryptedContent string          `json:"encryptedContent,omitempty"`
	UpdatedAt        timex.Timestamp `json:"updatedAt"`
	CreatedAt        timex.Timestamp `json:"createdAt"`
}

// Clone returns a deep copy. The store hands out clones so callers can never
// alias store-owned state.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	copied := *n
	if n.Tags != nil {
		copied.Tags = make([]string, len(n.Tags))
		copy(copied.Tags, n.Tags)
	}
	return &copied
}

// HasTag reports whether tag is already present.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Draft is the shape sent to the note service on create. It carries no ID;
// the service assigns one.
type Draft struct {
	Title   string   `json:"title" validate:"max=255"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" validate:"dive,required,max=64"`
	Pinned  bool     `json:"pinned"`
}

// Patch is a partial update. Nil fields are left untouched; a non-nil
// EncryptedContent pointing at an empty string clears the ciphertext
// (the unlock path).
type Patch struct {
	Title            *string   `json:"title,omitempty"`
	Content          *string   `json:"content,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	Pinned           *bool     `json:"pinned,omitempty"`
	IsEncrypted      *bool     `json:"isEncrypted,omitempty"`
	EncryptedContent *string   `json:"encryptedContent,omitempty"`
}

// Apply merges p into n in place.
func (p Patch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		tags := make([]string, len(*p.Tags))
		copy(tags, *p.Tags)
		n.Tags = tags
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	if p.IsEncrypted != nil {
		n.IsEncrypted = *p.IsEncrypted
	}
	if p.EncryptedContent != nil {
		n.EncryptedContent = *p.EncryptedContent
	}
}

// EncryptedPayload is the plaintext pair sealed into EncryptedContent.
type EncryptedPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SortForDisplay orders notes the way the UI presents them: pinned first,
// then most recently updated.
func SortForDisplay(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

// cachedNote tolerates the legacy record shapes that older clients persisted:
// a "text" field instead of title/content, missing tags, missing isEncrypted.
type cachedNote struct {
	Note
	Text string `json:"text"`
}

func (c *cachedNote) normalized() *Note {
	n := c.Note
	if c.Text != "" && n.Content == "" {
		n.Content = c.Text
		n.Title = DefaultTitle
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n
}

// DecodeCachedNotes parses a cached note collection, normalizing legacy
// records along the way.
func DecodeCachedNotes(data []byte) ([]*Note, error) {
	var raw []cachedNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	notes := make([]*Note, 0, len(raw))
	for i := range raw {
		notes = append(notes, raw[i].normalized())
	}
	return notes, nil
}

// DecodeCachedNote parses a single cached note, normalizing legacy shapes.
func DecodeCachedNote(data []byte) (*Note, error) {
	var raw cachedNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.normalized(), nil
}
