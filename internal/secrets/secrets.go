// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value. Environment variables fill in keys that have
// no file.
//
// Supported key files: gemini-api-key, gemini-api-key-secondary, groq-api-key,
// anthropic-api-key, google-api-key, google-cse-id.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Key file names.
const (
	GeminiKey          = "gemini-api-key"
	GeminiKeySecondary = "gemini-api-key-secondary"
	GroqKey            = "groq-api-key"
	AnthropicKey       = "anthropic-api-key"
	GoogleKey          = "google-api-key"
	GoogleCSEID        = "google-cse-id"
)

// envNames maps each key file to the environment variable consulted when the
// file is absent.
var envNames = map[string]string{
	GeminiKey:          "GEMINI_API_KEY",
	GeminiKeySecondary: "GEMINI_API_KEY_SECONDARY",
	GroqKey:            "GROQ_API_KEY",
	AnthropicKey:       "ANTHROPIC_API_KEY",
	GoogleKey:          "GOOGLE_API_KEY",
	GoogleCSEID:        "GOOGLE_CSE_ID",
}

// Set holds loaded secrets keyed by file name.
type Set map[string]string

// Load reads all files in dir and returns a Set of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty Set.
// Unreadable files produce a warning on warn (when non-nil) but do not abort.
func Load(dir string, warn io.Writer) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if warn != nil {
				fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			}
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			s[name] = value
		}
	}

	return s, nil
}

// Lookup returns the secret for name, falling back to its environment variable.
func (s Set) Lookup(name string) string {
	if v, ok := s[name]; ok && v != "" {
		return v
	}
	if env, ok := envNames[name]; ok {
		return strings.TrimSpace(os.Getenv(env))
	}
	return ""
}

// Values looks up each name in order and returns the non-empty, distinct values.
// It builds ordered credential lists such as primary then secondary Gemini key.
func (s Set) Values(names ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		v := s.Lookup(n)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Names returns the loaded key names, sorted. Values are never exposed.
func (s Set) Names() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
