// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
)

// anthropicAPIURL is the Messages API endpoint. Package-level var for test substitution.
var anthropicAPIURL = "https://api.anthropic.com/v1/messages"

const (
	anthropicVersion     = "2023-06-01"
	anthropicPlaceholder = "پاسخی از Claude دریافت نشد."
)

// AnthropicBackend calls the Claude Messages API.
type AnthropicBackend struct {
	Model     string
	MaxTokens int
	Client    *http.Client
	UserAgent string

	// BaseURL overrides anthropicAPIURL when set.
	BaseURL string
}

// anthropicRequest is the request body for the Messages API.
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the response body from the Messages API.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Call sends prompt as a single user message.
func (b *AnthropicBackend) Call(ctx context.Context, prompt, credential string) (string, error) {
	url := anthropicAPIURL
	if b.BaseURL != "" {
		url = b.BaseURL
	}
	maxTokens := b.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	reqBody := anthropicRequest{
		Model:     b.Model,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	header := http.Header{}
	header.Set("x-api-key", credential)
	header.Set("anthropic-version", anthropicVersion)
	if b.UserAgent != "" {
		header.Set("User-Agent", b.UserAgent)
	}

	var aResp anthropicResponse
	if err := postJSON(ctx, b.Client, url, header, reqBody, &aResp); err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}

	if len(aResp.Content) == 0 || aResp.Content[0].Text == "" {
		return anthropicPlaceholder, nil
	}
	return aResp.Content[0].Text, nil
}
