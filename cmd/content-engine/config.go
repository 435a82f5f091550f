// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/secrets"
	"github.com/pdiddy/content-engine/pkg/types"
)

const envPrefix = "CONTENT_ENGINE"

// setDefaults registers every config key with its default so that
// environment variables such as CONTENT_ENGINE_SERVER_ADDR are honored.
func setDefaults(v *viper.Viper) {
	def := types.DefaultConfig()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.timeout", def.HTTP.Timeout)
	v.SetDefault("http.user_agent", def.HTTP.UserAgent)

	v.SetDefault("providers.default", def.Providers.Default)
	for name, p := range map[string]types.ProviderConfig{
		"gemini":    def.Providers.Gemini,
		"groq":      def.Providers.Groq,
		"anthropic": def.Providers.Anthropic,
	} {
		v.SetDefault("providers."+name+".model", p.Model)
		v.SetDefault("providers."+name+".max_tokens", p.MaxTokens)
		v.SetDefault("providers."+name+".base_url", p.BaseURL)
		v.SetDefault("providers."+name+".api_keys", p.APIKeys)
	}

	v.SetDefault("search.http.timeout", def.Search.HTTP.Timeout)
	v.SetDefault("search.http.user_agent", def.Search.HTTP.UserAgent)
	v.SetDefault("search.api_key", def.Search.APIKey)
	v.SetDefault("search.engine_id", def.Search.EngineID)
	v.SetDefault("search.max_results", def.Search.MaxResults)
	v.SetDefault("search.country", def.Search.Country)
	v.SetDefault("search.language", def.Search.Language)
	v.SetDefault("search.max_retries", def.Search.MaxRetries)

	v.SetDefault("fetch.http.timeout", def.Fetch.HTTP.Timeout)
	v.SetDefault("fetch.http.user_agent", def.Fetch.HTTP.UserAgent)
	v.SetDefault("fetch.max_chars", def.Fetch.MaxChars)

	v.SetDefault("generation.default_word_count", def.Generation.DefaultWordCount)
	v.SetDefault("generation.section_delay", def.Generation.SectionDelay)

	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.users_db", def.Server.UsersDB)
	v.SetDefault("server.allowed_origins", def.Server.AllowedOrigins)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.pretty", def.Log.Pretty)
}

// loadConfig decodes the viper state into a Config and fills credentials
// the config left empty from s.
func loadConfig(v *viper.Viper, s secrets.Set) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	applySecrets(&cfg, s)
	return cfg, nil
}

// applySecrets fills empty credential fields. Config values win over secret
// files, which win over the environment.
func applySecrets(cfg *types.Config, s secrets.Set) {
	if len(cfg.Providers.Gemini.APIKeys) == 0 {
		cfg.Providers.Gemini.APIKeys = s.Values(secrets.GeminiKey, secrets.GeminiKeySecondary)
	}
	if len(cfg.Providers.Groq.APIKeys) == 0 {
		cfg.Providers.Groq.APIKeys = s.Values(secrets.GroqKey)
	}
	if len(cfg.Providers.Anthropic.APIKeys) == 0 {
		cfg.Providers.Anthropic.APIKeys = s.Values(secrets.AnthropicKey)
	}
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = s.Lookup(secrets.GoogleKey)
	}
	if cfg.Search.EngineID == "" {
		cfg.Search.EngineID = s.Lookup(secrets.GoogleCSEID)
	}
}
