package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/common"
)

// HTTPClient talks JSON to the note service REST API. Every response is
// wrapped in an envelope: {"success": bool, "data": ..., "error": "..."}.
type HTTPClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewHTTPClient returns a client bound to baseURL. The access token may be
// empty for services that authenticate by other means (e.g. the local dev
// server, which accepts anonymous requests).
func NewHTTPClient(baseURL string, accessToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{},
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetAccessToken replaces the bearer token used on subsequent requests.
func (c *HTTPClient) SetAccessToken(token string) {
	c.accessToken = token
}

// tokenExpired reports whether the configured access token is a JWT whose
// exp claim is in the past. Tokens that are not JWTs (opaque API keys) are
// never considered expired here; the service will reject them itself.
func (c *HTTPClient) tokenExpired() bool {
	if c.accessToken == "" {
		return false
	}
	token, _, err := jwt.NewParser().ParseUnverified(c.accessToken, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	if c.tokenExpired() {
		return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrTokenExpired)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("note service error: %s", msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: malformed payload: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *HTTPClient) List(ctx context.Context) ([]*models.Note, error) {
	var notes []*models.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) Get(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) Create(ctx context.Context, draft models.Draft) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) Update(ctx context.Context, id string, patch models.Patch) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPatch, "/api/notes/"+url.PathEscape(id), patch, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) TogglePin(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPatch, "/api/notes/"+url.PathEscape(id)+"/pin", nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func (c *HTTPClient) AddTag(ctx context.Context, id string, tag string) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes/"+url.PathEscape(id)+"/tags", tagRequest{Tag: tag}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) RemoveTag(ctx context.Context, id string, tag string) (*models.Note, error) {
	var note models.Note
	path := "/api/notes/" + url.PathEscape(id) + "/tags?tag=" + url.QueryEscape(tag)
	if err := c.do(ctx, http.MethodDelete, path, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}
