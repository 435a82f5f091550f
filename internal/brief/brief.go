// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package brief reads content briefs: aligned header/value sequences supplied
// by the caller. It answers keyword lookups over the headers and renders the
// whole brief as prompt context.
package brief

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Keyword sets for the fields the pipeline reads. Matching is a
// case-insensitive substring test against each header.
var (
	TopicKeys     = []string{"topic", "عنوان", "موضوع"}
	WordCountKeys = []string{"word", "count", "کلمات", "تعداد"}
	BrandKeys     = []string{"brand", "برند"}
	FAQKeys       = []string{"faq", "سوالات متداول"}
	SourceURLKeys = []string{"url", "link", "لینک", "آدرس"}
)

const (
	emptyHeader = "ستون خالی"
	emptyValue  = "داده خالی"
)

// Accessor answers queries over one brief. It never mutates the brief.
type Accessor struct {
	b *types.Brief
}

// New wraps b. A nil brief behaves as a malformed one.
func New(b *types.Brief) Accessor {
	return Accessor{b: b}
}

// Valid reports whether the brief has both sequences and they are aligned.
func (a Accessor) Valid() bool {
	return a.b != nil && a.b.Headers != nil && a.b.RowData != nil &&
		len(a.b.Headers) == len(a.b.RowData)
}

// FindValue returns the value under the first header, in header order, that
// contains any of keywords. The value is returned even when empty. It reports
// false when no header matches or the brief is malformed. Non-string headers
// are skipped.
func (a Accessor) FindValue(keywords ...string) (string, bool) {
	if !a.Valid() {
		return "", false
	}
	for i, h := range a.b.Headers {
		header, ok := h.(string)
		if !ok || header == "" {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(header))
		for _, key := range keywords {
			if strings.Contains(lower, strings.ToLower(key)) {
				return cellText(a.b.RowData[i]), true
			}
		}
	}
	return "", false
}

// Render produces one "- header: value" line per header, in header order, with
// placeholders for empty cells. Values are inserted as-is.
func (a Accessor) Render() string {
	if a.b == nil || a.b.Headers == nil || a.b.RowData == nil {
		return ""
	}
	var sb strings.Builder
	for i, h := range a.b.Headers {
		header := cellText(h)
		if header == "" {
			header = emptyHeader
		}
		value := ""
		if i < len(a.b.RowData) {
			value = cellText(a.b.RowData[i])
		}
		if value == "" {
			value = emptyValue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", header, value)
	}
	return sb.String()
}

// Topic returns the non-empty topic value.
func (a Accessor) Topic() (string, bool) {
	v, ok := a.FindValue(TopicKeys...)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// WordCountText returns the word-count field as written ("1600 کلمه" stays
// as is) when it starts with a number, otherwise def. Outline prompts quote
// it verbatim.
func (a Accessor) WordCountText(def int) string {
	v, ok := a.FindValue(WordCountKeys...)
	if !ok {
		return strconv.Itoa(def)
	}
	if _, ok := leadingInt(v); !ok {
		return strconv.Itoa(def)
	}
	return strings.TrimSpace(v)
}

// WordCount parses the leading integer of the word-count field ("1600 words"
// gives 1600). It returns def when the field is absent or not numeric.
func (a Accessor) WordCount(def int) int {
	v, ok := a.FindValue(WordCountKeys...)
	if !ok {
		return def
	}
	n, ok := leadingInt(v)
	if !ok {
		return def
	}
	return n
}

// Brand returns the brand name, if any.
func (a Accessor) Brand() string {
	v, _ := a.FindValue(BrandKeys...)
	return strings.TrimSpace(v)
}

// FAQCount returns the requested number of FAQ entries, or 0.
func (a Accessor) FAQCount() int {
	v, ok := a.FindValue(FAQKeys...)
	if !ok {
		return 0
	}
	n, ok := leadingInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// SourceURL returns the URL of an existing article to rewrite, if any.
func (a Accessor) SourceURL() string {
	v, ok := a.FindValue(SourceURLKeys...)
	if !ok {
		return ""
	}
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		return ""
	}
	return v
}

// Load reads a brief from a YAML or JSON file.
func Load(path string) (*types.Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading brief: %w", err)
	}
	var b types.Brief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing brief %s: %w", filepath.Base(path), err)
	}
	return &b, nil
}

// cellText converts a decoded JSON/YAML cell to text. Null becomes "".
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// leadingInt parses the base-10 integer at the start of s, after optional
// whitespace and sign. Persian and Arabic-Indic digits are accepted. Values
// above math.MaxInt32 are rejected.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			break
		}
		if n > (math.MaxInt32-d)/10 {
			return 0, false
		}
		n = n*10 + d
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= '۰' && r <= '۹':
		return int(r - '۰'), true
	case r >= '٠' && r <= '٩':
		return int(r - '٠'), true
	}
	return 0, false
}
