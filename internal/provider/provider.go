// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider runs prompts against the configured text-generation
// backends. Each backend adapts one vendor's request and response shape; the
// Gateway adds credential failover on top and hides the differences from
// callers, which only see Generator.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/content-engine/pkg/types"
)

// ID identifies a text-generation provider as named by callers.
type ID string

const (
	Gemini    ID = "gemini-1.5-flash"
	Groq      ID = "groq-gpt-oss-20b"
	Anthropic ID = "claude-3.5-sonnet"
)

// Known lists the provider identifiers this build understands.
var Known = []ID{Gemini, Groq, Anthropic}

var (
	// ErrUnknownProvider is returned for an identifier outside Known. It is a
	// configuration error and is never retried.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoCredentials is returned when a known provider has no credentials.
	ErrNoCredentials = errors.New("no credentials configured")
)

// Backend performs one call against one vendor API with one credential. It
// returns an error for transport failures, non-2xx statuses, and bodies that
// cannot be decoded. A well-formed body without generated text yields the
// backend's placeholder text instead of an error.
type Backend interface {
	Call(ctx context.Context, prompt, credential string) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, prompt, credential string) (string, error)

// Call implements Backend.
func (f BackendFunc) Call(ctx context.Context, prompt, credential string) (string, error) {
	return f(ctx, prompt, credential)
}

// Generator is the capability the pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is a successful gateway call.
type Result struct {
	Text     string
	Provider ID

	// Attempts counts the credentials tried, including the one that succeeded.
	Attempts int
}

// ExhaustedError reports that every credential for a provider failed.
type ExhaustedError struct {
	Provider ID
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d credential(s) for %s failed: %v", e.Attempts, e.Provider, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

type entry struct {
	backend     Backend
	credentials []string
}

// Gateway dispatches prompts to registered backends. It is read-only after
// construction and safe for concurrent use.
type Gateway struct {
	entries map[ID]entry
	def     ID
	log     zerolog.Logger
}

// NewGateway returns an empty gateway. def is used when a call names no
// provider.
func NewGateway(def ID, log zerolog.Logger) *Gateway {
	return &Gateway{
		entries: make(map[ID]entry),
		def:     def,
		log:     log,
	}
}

// FromConfig builds a gateway with every known backend registered using the
// credentials and models from cfg. client is shared by the HTTP backends.
func FromConfig(cfg types.ProvidersConfig, client *http.Client, userAgent string, log zerolog.Logger) *Gateway {
	def := ID(cfg.Default)
	if def == "" {
		def = Gemini
	}
	g := NewGateway(def, log)
	g.Register(Gemini, &GeminiBackend{
		Model:     cfg.Gemini.Model,
		MaxTokens: cfg.Gemini.MaxTokens,
		BaseURL:   cfg.Gemini.BaseURL,
		Client:    client,
		UserAgent: userAgent,
	}, cfg.Gemini.APIKeys)
	g.Register(Groq, &GroqBackend{
		Model:      cfg.Groq.Model,
		MaxTokens:  cfg.Groq.MaxTokens,
		BaseURL:    cfg.Groq.BaseURL,
		HTTPClient: client,
	}, cfg.Groq.APIKeys)
	g.Register(Anthropic, &AnthropicBackend{
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		BaseURL:   cfg.Anthropic.BaseURL,
		Client:    client,
		UserAgent: userAgent,
	}, cfg.Anthropic.APIKeys)
	return g
}

// Register installs b under id with the credentials to try, in order. Empty
// credentials are dropped. Register is not safe to call concurrently with
// Call.
func (g *Gateway) Register(id ID, b Backend, credentials []string) {
	var creds []string
	for _, c := range credentials {
		if c = strings.TrimSpace(c); c != "" {
			creds = append(creds, c)
		}
	}
	g.entries[id] = entry{backend: b, credentials: creds}
}

// Default returns the provider used when a call names none.
func (g *Gateway) Default() ID { return g.def }

// Resolve maps a caller-supplied identifier to a registered provider. Empty
// selects the default.
func (g *Gateway) Resolve(name string) (ID, error) {
	id := ID(strings.TrimSpace(name))
	if id == "" {
		id = g.def
	}
	if _, ok := g.entries[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return id, nil
}

// Call runs prompt against provider id, trying each credential in order until
// one succeeds. Failed credentials are logged and skipped; the same credential
// is never retried and there is no delay between attempts. When every
// credential fails the error is an *ExhaustedError.
func (g *Gateway) Call(ctx context.Context, id ID, prompt string) (Result, error) {
	resolved, err := g.Resolve(string(id))
	if err != nil {
		return Result{}, err
	}
	e := g.entries[resolved]
	if len(e.credentials) == 0 {
		return Result{}, fmt.Errorf("%s: %w", resolved, ErrNoCredentials)
	}

	var last error
	for i, cred := range e.credentials {
		text, err := e.backend.Call(ctx, prompt, cred)
		if err == nil {
			return Result{Text: text, Provider: resolved, Attempts: i + 1}, nil
		}
		last = err
		g.log.Warn().
			Str("provider", string(resolved)).
			Int("attempt", i+1).
			Int("credentials", len(e.credentials)).
			Err(err).
			Msg("provider call failed")
	}
	return Result{}, &ExhaustedError{Provider: resolved, Attempts: len(e.credentials), Last: last}
}

// Provider returns a Generator bound to the provider named by name.
func (g *Gateway) Provider(name string) (Generator, error) {
	id, err := g.Resolve(name)
	if err != nil {
		return nil, err
	}
	return &boundProvider{g: g, id: id}, nil
}

type boundProvider struct {
	g  *Gateway
	id ID
}

func (p *boundProvider) Generate(ctx context.Context, prompt string) (string, error) {
	r, err := p.g.Call(ctx, p.id, prompt)
	if err != nil {
		return "", err
	}
	return r.Text, nil
}
