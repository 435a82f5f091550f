// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search looks up competing article titles for a topic.
package search

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// Provider returns up to a configured number of result titles for query, in
// ranking order.
type Provider interface {
	Search(ctx context.Context, query string) ([]string, error)
}

var (
	// ErrMissingAPIKey is returned when the provider has no API key.
	ErrMissingAPIKey = errors.New("search API key is required")

	// ErrMissingEngineID is returned when the provider has no engine ID.
	ErrMissingEngineID = errors.New("search engine ID is required")
)

// Dedupe drops empty titles and titles that repeat an earlier one once case,
// punctuation and spacing are ignored. Order is preserved and titles are
// returned trimmed.
func Dedupe(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		key := normalizeTitle(t)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// normalizeTitle lowercases and strips non-alphanumeric characters for
// duplicate detection.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
