package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notezapp/notez/internal/client/client"
	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/logging"
	"github.com/notezapp/notez/internal/server/notes"
)

func newTestServer(t *testing.T) (*httptest.Server, *notes.Repository) {
	t.Helper()
	repo := notes.NewRepository()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(NewRouter(NewNoteHandler(repo), log))
	t.Cleanup(srv.Close)
	return srv, repo
}

func decodeEnvelope(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success, "error: %s", env.Error)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

func TestCreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"title":"","content":"body","tags":["work"]}`
	resp, err := http.Post(srv.URL+"/api/notes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Note
	decodeEnvelope(t, resp, &created)
	assert.Equal(t, models.DefaultTitle, created.Title)
	assert.Equal(t, []string{"work"}, created.Tags)
	assert.NotEmpty(t, created.ID)

	resp, err = http.Get(srv.URL + "/api/notes")
	require.NoError(t, err)
	var listed []models.Note
	decodeEnvelope(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreate_RejectsLongTitle(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(models.Draft{Title: strings.Repeat("x", 300)})
	resp, err := http.Post(srv.URL+"/api/notes", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdate_UnknownNote(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/notes/nope", strings.NewReader(`{"title":"x"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddTag_RequiresTag(t *testing.T) {
	srv, repo := newTestServer(t)
	note := repo.Create(models.Draft{Title: "n"})

	resp, err := http.Post(srv.URL+"/api/notes/"+note.ID+"/tags", "application/json", strings.NewReader(`{"tag":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, resp, nil)
}

// The CLI's HTTP client and this server must agree on paths, verbs, and the
// response envelope. Run the whole client surface against a live router.
func TestClientRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx := context.Background()
	c := client.NewHTTPClient(srv.URL, "")
	defer c.Close()

	require.NoError(t, c.Ping(ctx))

	created, err := c.Create(ctx, models.Draft{Title: "first", Content: "body", Tags: []string{}})
	require.NoError(t, err)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	title := "renamed"
	updated, err := c.Update(ctx, created.ID, models.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	pinned, err := c.TogglePin(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, pinned.Pinned)

	tagged, err := c.AddTag(ctx, created.ID, "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, tagged.Tags)

	untagged, err := c.RemoveTag(ctx, created.ID, "work")
	require.NoError(t, err)
	assert.Empty(t, untagged.Tags)

	notes, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
}
