package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/common"
	"github.com/notezapp/notez/internal/timex"
)

func TestCreate_FillsDefaults(t *testing.T) {
	r := NewRepository()

	note := r.Create(models.Draft{Content: "body"})

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, models.DefaultTitle, note.Title)
	assert.Equal(t, []string{}, note.Tags)
	assert.False(t, note.UpdatedAt.IsZero())
	assert.False(t, note.CreatedAt.IsZero())
}

func TestList_PinnedFirstThenRecency(t *testing.T) {
	r := NewRepository()

	old := r.Create(models.Draft{Title: "old"})
	fresh := r.Create(models.Draft{Title: "fresh"})
	pinned := r.Create(models.Draft{Title: "pinned", Pinned: true})

	// force distinct update times
	r.mu.Lock()
	r.notes[0].UpdatedAt = timex.FromTime(time.Now().Add(-time.Hour))
	r.mu.Unlock()

	got := r.List()
	require.Len(t, got, 3)
	assert.Equal(t, pinned.ID, got[0].ID)
	assert.Equal(t, fresh.ID, got[1].ID)
	assert.Equal(t, old.ID, got[2].ID)
}

func TestUpdate_PartialPatch(t *testing.T) {
	r := NewRepository()
	note := r.Create(models.Draft{Title: "before", Content: "body"})

	title := "after"
	got, err := r.Update(note.ID, models.Patch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.True(t, got.UpdatedAt.After(note.UpdatedAt) || got.UpdatedAt.Equal(note.UpdatedAt.Time))
}

func TestUpdate_Unknown(t *testing.T) {
	r := NewRepository()
	_, err := r.Update("nope", models.Patch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	r := NewRepository()
	note := r.Create(models.Draft{Title: "doomed"})

	require.NoError(t, r.Delete(note.ID))
	assert.Empty(t, r.List())
	assert.ErrorIs(t, r.Delete(note.ID), common.ErrorNotFound)
}

func TestTogglePin(t *testing.T) {
	r := NewRepository()
	note := r.Create(models.Draft{Title: "n"})

	got, err := r.TogglePin(note.ID)
	require.NoError(t, err)
	assert.True(t, got.Pinned)

	got, err = r.TogglePin(note.ID)
	require.NoError(t, err)
	assert.False(t, got.Pinned)
}

func TestAddTag_SetSemantics(t *testing.T) {
	r := NewRepository()
	note := r.Create(models.Draft{Title: "n"})

	got, err := r.AddTag(note.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, got.Tags)

	got, err = r.AddTag(note.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, got.Tags)
}

func TestRemoveTag(t *testing.T) {
	r := NewRepository()
	note := r.Create(models.Draft{Title: "n", Tags: []string{"a", "b"}})

	got, err := r.RemoveTag(note.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.Tags)

	got, err = r.RemoveTag(note.ID, "missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.Tags)
}

func TestGet_ReturnsCopy(t *testing.T) {
	r := NewRepository()
	note := r.Create(models.Draft{Title: "n", Tags: []string{"a"}})

	got, err := r.Get(note.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	got.Tags[0] = "mutated"

	again, err := r.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "n", again.Title)
	assert.Equal(t, []string{"a"}, again.Tags)
}
