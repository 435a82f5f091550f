// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint. Package-level var for test substitution.
var groqBaseURL = "https://api.groq.com/openai/v1/"

const groqPlaceholder = "پاسخی از Groq دریافت نشد."

// GroqBackend calls Groq through the OpenAI chat completions protocol.
type GroqBackend struct {
	Model      string
	MaxTokens  int
	HTTPClient *http.Client

	// BaseURL overrides groqBaseURL when set.
	BaseURL string
}

// Call sends prompt as a single user message. The SDK's own retries are
// disabled: a failed call falls through to the gateway's next credential.
func (b *GroqBackend) Call(ctx context.Context, prompt, credential string) (string, error) {
	base := groqBaseURL
	if b.BaseURL != "" {
		base = b.BaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(credential),
		option.WithBaseURL(base),
		option.WithMaxRetries(0),
	}
	if b.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(b.HTTPClient))
	}
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if b.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(b.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling Groq API: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return groqPlaceholder, nil
	}
	return resp.Choices[0].Message.Content, nil
}
