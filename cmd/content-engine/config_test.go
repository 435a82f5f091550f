// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/secrets"
	"github.com/pdiddy/content-engine/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v, secrets.Set{})
	require.NoError(t, err)

	def := types.DefaultConfig()
	assert.Equal(t, def.Providers.Default, cfg.Providers.Default)
	assert.Equal(t, def.Providers.Groq.Model, cfg.Providers.Groq.Model)
	assert.Equal(t, def.Generation, cfg.Generation)
	assert.Equal(t, def.Server.Addr, cfg.Server.Addr)
	assert.Equal(t, def.Search.MaxResults, cfg.Search.MaxResults)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CONTENT_ENGINE_SERVER_ADDR", ":9090")
	t.Setenv("CONTENT_ENGINE_GENERATION_SECTION_DELAY", "250ms")
	t.Setenv("CONTENT_ENGINE_PROVIDERS_DEFAULT", "claude-3.5-sonnet")

	v := viper.New()
	setDefaults(v)
	cfg, err := loadConfig(v, secrets.Set{})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Generation.SectionDelay)
	assert.Equal(t, "claude-3.5-sonnet", cfg.Providers.Default)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
providers:
  default: groq-gpt-oss-20b
  groq:
    api_keys: ["from-config"]
generation:
  default_word_count: 2000
`), 0o644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v, secrets.Set{secrets.GroqKey: "from-secrets"})
	require.NoError(t, err)
	assert.Equal(t, "groq-gpt-oss-20b", cfg.Providers.Default)
	assert.Equal(t, []string{"from-config"}, cfg.Providers.Groq.APIKeys, "config wins over secrets")
	assert.Equal(t, 2000, cfg.Generation.DefaultWordCount)
	assert.Equal(t, "qwen/qwen3-32b", cfg.Providers.Groq.Model, "unset keys keep defaults")
}

func TestApplySecrets(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-anthropic")
	t.Setenv("GEMINI_API_KEY_SECONDARY", "env-gemini-2")

	s := secrets.Set{
		secrets.GeminiKey:   "file-gemini-1",
		secrets.GoogleKey:   "gk",
		secrets.GoogleCSEID: "cx",
	}
	cfg := types.DefaultConfig()
	applySecrets(&cfg, s)

	assert.Equal(t, []string{"file-gemini-1", "env-gemini-2"}, cfg.Providers.Gemini.APIKeys)
	assert.Equal(t, []string{"env-anthropic"}, cfg.Providers.Anthropic.APIKeys)
	assert.Equal(t, "gk", cfg.Search.APIKey)
	assert.Equal(t, "cx", cfg.Search.EngineID)
}
