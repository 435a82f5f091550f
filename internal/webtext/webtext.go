// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webtext fetches a web page and reduces it to readable plain text
// suitable for quoting inside a prompt.
package webtext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// DefaultMaxChars is the rune budget used when the config sets none.
const DefaultMaxChars = 6000

// maxBodyBytes bounds how much of a page is read.
const maxBodyBytes = 5 << 20

// removed lists elements whose content is never visible text.
const removed = "head, script, style, noscript, template, svg, iframe, object, canvas"

// blockTags start a new line when they open and a new paragraph when they
// close.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "nav": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "blockquote": true, "pre": true, "figure": true,
	"figcaption": true, "hr": true,
}

// lineBreaks flattens source line breaks; only markup starts new lines.
var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// bullet marks list items until whitespace is normalized.
const bullet = "\x00*"

// Fetcher downloads pages and strips them to text.
type Fetcher struct {
	Client *http.Client
	Config types.FetchConfig
	Log    zerolog.Logger
}

// NewFetcher returns a Fetcher for cfg.
func NewFetcher(cfg types.FetchConfig, log zerolog.Logger) *Fetcher {
	return &Fetcher{Client: httputil.NewClient(cfg.HTTP.Timeout), Config: cfg, Log: log}
}

// Fetch downloads url and returns its visible text truncated to the
// configured rune budget.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.Config.HTTP.UserAgent != "" {
		req.Header.Set("User-Agent", f.Config.HTTP.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, 0, f.Log)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	text, err := Strip(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}

	max := f.Config.MaxChars
	if max <= 0 {
		max = DefaultMaxChars
	}
	out := Truncate(text, max)
	f.Log.Debug().Str("url", url).Int("chars", len([]rune(out))).Msg("page fetched")
	return out, nil
}

// Strip parses an HTML document and returns its visible text. Scripts and
// styles are dropped, block elements end lines, list items become "  * "
// bullets, and runs of blank lines collapse to one.
func Strip(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	doc.Find(removed).Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		walk(&b, n)
	}
	return normalize(b.String()), nil
}

func walk(b *strings.Builder, n *html.Node) {
	block := n.Type == html.ElementNode && blockTags[n.Data]
	switch {
	case n.Type == html.TextNode:
		b.WriteString(lineBreaks.Replace(n.Data))
	case block:
		b.WriteString("\n")
	case n.Type == html.ElementNode && n.Data == "br":
		b.WriteString("\n")
	case n.Type == html.ElementNode && n.Data == "li":
		b.WriteString("\n" + bullet + " ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c)
	}
	if block {
		b.WriteString("\n\n")
	}
}

// normalize collapses whitespace inside lines and blank-line runs.
func normalize(s string) string {
	var lines []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if strings.HasPrefix(line, bullet) {
			if strings.TrimSpace(strings.TrimPrefix(line, bullet)) == "" {
				continue
			}
			line = "  *" + strings.TrimPrefix(line, bullet)
		}
		if line == "" {
			if len(lines) > 0 && !blank {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		lines = append(lines, line)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Truncate returns at most max runes of s.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
