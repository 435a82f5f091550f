// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiAPIBase is the Gemini API host. Package-level var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/"

const geminiPlaceholder = "پاسخی از Gemini دریافت نشد."

// GeminiBackend calls the Gemini generateContent API through the genai SDK.
type GeminiBackend struct {
	Model     string
	MaxTokens int
	Client    *http.Client
	UserAgent string

	// BaseURL overrides geminiAPIBase when set.
	BaseURL string
}

// Call sends prompt with the given API key. A client is built per call so
// each credential is used on its own; the SDK sends the key in the
// x-goog-api-key header, never in the URL.
func (b *GeminiBackend) Call(ctx context.Context, prompt, credential string) (string, error) {
	base := geminiAPIBase
	if b.BaseURL != "" {
		base = b.BaseURL
	}
	opts := genai.HTTPOptions{BaseURL: base}
	if b.UserAgent != "" {
		opts.Headers = http.Header{"User-Agent": []string{b.UserAgent}}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      credential,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  b.Client,
		HTTPOptions: opts,
	})
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  genai.RoleUser,
	}}
	var cfg *genai.GenerateContentConfig
	if b.MaxTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: int32(b.MaxTokens)}
	}

	resp, err := client.Models.GenerateContent(ctx, b.Model, contents, cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			err = &StatusError{Code: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0].Text == "" {
		return geminiPlaceholder, nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
