// Package ai talks to the AI features backend. The backend consumes plain
// text extracted from a note and produces plain text back; nothing here
// touches note state.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client exposes the AI-assisted features.
type Client interface {
	// Summary produces a short summary of the text.
	Summary(ctx context.Context, text string) (string, error)

	// SuggestTags proposes tags for the text.
	SuggestTags(ctx context.Context, text string) ([]string, error)

	// CheckGrammar returns a corrected version of the text.
	CheckGrammar(ctx context.Context, text string) (string, error)

	// Translate translates the text into the target language.
	Translate(ctx context.Context, text string, targetLanguage string) (string, error)
}

// HTTPClient implements Client against the AI backend's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ai backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
			return fmt.Errorf("ai backend error: %s", detail.Detail)
		}
		return fmt.Errorf("ai backend error: %s", resp.Status)
	}

	return json.Unmarshal(raw, out)
}

type textRequest struct {
	Text string `json:"text"`
}

func (c *HTTPClient) Summary(ctx context.Context, text string) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.post(ctx, "/ai/summary", textRequest{Text: text}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

func (c *HTTPClient) SuggestTags(ctx context.Context, text string) ([]string, error) {
	var out struct {
		Tags []string `json:"tags"`
	}
	if err := c.post(ctx, "/ai/tags", textRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

func (c *HTTPClient) CheckGrammar(ctx context.Context, text string) (string, error) {
	var out struct {
		CorrectedText string `json:"corrected_text"`
	}
	if err := c.post(ctx, "/ai/grammar", textRequest{Text: text}, &out); err != nil {
		return "", err
	}
	return out.CorrectedText, nil
}

func (c *HTTPClient) Translate(ctx context.Context, text string, targetLanguage string) (string, error) {
	var out struct {
		Translation string `json:"translation"`
	}
	body := struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"target_language"`
	}{Text: text, TargetLanguage: targetLanguage}
	if err := c.post(ctx, "/ai/translate", body, &out); err != nil {
		return "", err
	}
	return out.Translation, nil
}
