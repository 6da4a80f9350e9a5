package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Summary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ai/summary", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a long text", body["text"])

		json.NewEncoder(w).Encode(map[string]string{"summary": "short"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.Summary(context.Background(), "a long text")
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestHTTPClient_SuggestTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"tags": []string{"go", "notes"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.SuggestTags(context.Background(), "text about go notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "notes"}, got)
}

func TestHTTPClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/translate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["text"])
		assert.Equal(t, "fr", body["target_language"])

		json.NewEncoder(w).Encode(map[string]string{"translation": "bonjour"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.Translate(context.Background(), "hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", got)
}

func TestHTTPClient_ErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"detail": "model overloaded"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.CheckGrammar(context.Background(), "teh text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestHTTPClient_Unreachable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1")
	_, err := c.Summary(context.Background(), "text")
	require.Error(t, err)
}
