// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "content-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ProviderConfig holds the settings for one text-generation backend.
type ProviderConfig struct {
	// Model is the backend model identifier (e.g. "claude-3-5-sonnet-20240620").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKeys lists the credentials to try, in order. Only the first key that
	// succeeds is used for a call.
	APIKeys []string `json:"api_keys,omitempty" yaml:"api_keys,omitempty" mapstructure:"api_keys"`

	// BaseURL overrides the backend endpoint. Empty uses the public API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxTokens caps the generation length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ProvidersConfig groups the configured text-generation backends.
type ProvidersConfig struct {
	// Default is the provider identifier used when a request names none.
	Default string `json:"default" yaml:"default" mapstructure:"default"`

	Gemini    ProviderConfig `json:"gemini" yaml:"gemini" mapstructure:"gemini"`
	Groq      ProviderConfig `json:"groq" yaml:"groq" mapstructure:"groq"`
	Anthropic ProviderConfig `json:"anthropic" yaml:"anthropic" mapstructure:"anthropic"`
}

// SearchConfig holds settings for the competitor-title search used by the
// title stage.
type SearchConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// APIKey is the Google Custom Search API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// EngineID is the Custom Search engine identifier (cx).
	EngineID string `json:"engine_id,omitempty" yaml:"engine_id,omitempty" mapstructure:"engine_id"`

	// MaxResults is the maximum number of competitor titles (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Country and Language bias the results (defaults "ir" and "fa").
	Country  string `json:"country" yaml:"country" mapstructure:"country"`
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// MaxRetries bounds retries on HTTP 429 responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FetchConfig holds settings for fetching an existing article to rewrite.
type FetchConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// MaxChars is the rune budget of stripped page text inserted into a prompt.
	MaxChars int `json:"max_chars" yaml:"max_chars" mapstructure:"max_chars"`
}

// GenerationConfig holds settings shared by the generation stages.
type GenerationConfig struct {
	// DefaultWordCount is the article length used when the brief has none (default 1500).
	DefaultWordCount int `json:"default_word_count" yaml:"default_word_count" mapstructure:"default_word_count"`

	// SectionDelay is the pause between consecutive section calls (default 1s).
	SectionDelay time.Duration `json:"section_delay" yaml:"section_delay" mapstructure:"section_delay"`
}

// ServerConfig holds settings for the HTTP task endpoint.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// UsersDB is the path of the SQLite credential store. Empty disables login.
	UsersDB string `json:"users_db" yaml:"users_db" mapstructure:"users_db"`

	// AllowedOrigins lists CORS origins (default "*").
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// Config groups all settings for the content pipeline.
type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Providers  ProvidersConfig  `json:"providers" yaml:"providers" mapstructure:"providers"`
	Search     SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config populated with the built-in defaults.
// Credentials are left empty.
func DefaultConfig() Config {
	ua := "content-engine/0.1"
	return Config{
		HTTP: HTTPConfig{Timeout: 120 * time.Second, UserAgent: ua},
		Providers: ProvidersConfig{
			Default:   "gemini-1.5-flash",
			Gemini:    ProviderConfig{Model: "gemini-1.5-flash-latest", MaxTokens: 8192},
			Groq:      ProviderConfig{Model: "qwen/qwen3-32b", MaxTokens: 4096},
			Anthropic: ProviderConfig{Model: "claude-3-5-sonnet-20240620", MaxTokens: 4096},
		},
		Search: SearchConfig{
			HTTP:       HTTPConfig{Timeout: 30 * time.Second, UserAgent: ua},
			MaxResults: 5,
			Country:    "ir",
			Language:   "fa",
			MaxRetries: 2,
		},
		Fetch: FetchConfig{
			HTTP:     HTTPConfig{Timeout: 30 * time.Second, UserAgent: ua},
			MaxChars: 6000,
		},
		Generation: GenerationConfig{
			DefaultWordCount: 1500,
			SectionDelay:     time.Second,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			UsersDB:        "data/users.db",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info"},
	}
}
