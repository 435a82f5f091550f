// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package article writes a full article one outline section at a time,
// spreading a total word budget across the sections as it goes.
package article

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/content-engine/internal/provider"
	"github.com/pdiddy/content-engine/pkg/types"
)

// DefaultDelay is the pause between consecutive section calls.
const DefaultDelay = time.Second

const firstSummary = "This is the first section of the article."

var sectionPromptTmpl = template.Must(template.New("section").Parse(`
You are a precise and disciplined SEO content writer. Your task is to write a single section for a larger article titled "{{.Title}}".
{{- if .Brand}}
**Brand:** Mention "{{.Brand}}" naturally where it fits.
{{- end}}
**Overall Goal:** The final article must be close to {{.Total}} words.
**Words Written So Far:** {{.Written}} words.
**Remaining Words to Write:** {{.Remaining}} words.
**Your ONLY task now is to write the content for this specific heading:**
{{.Heading}}
{{- if .Subheadings}}
**Cover these sub-headings inside the section:**
{{- range .Subheadings}}
{{.}}
{{- end}}
{{- end}}
**CRITICAL INSTRUCTION:**
- The word count for your response for THIS SECTION must be **STRICTLY around {{.Target}} words**. Do not write significantly more or less.
- Your response must start directly with the heading (e.g., "{{.Heading}}").
- Maintain a professional tone consistent with the previous section summary: "{{.Summary}}"
`))

type sectionPromptData struct {
	Title       string
	Brand       string
	Total       int
	Written     int
	Remaining   int
	Heading     string
	Subheadings []string
	Target      int
	Summary     string
}

// Request describes one article to assemble.
type Request struct {
	Title      string
	TotalWords int
	Brand      string

	// Sections are the outline's ## lines, in order.
	Sections []string

	// Subheadings optionally lists the ### lines under each section, indexed
	// like Sections.
	Subheadings [][]string
}

// Result is an assembled article.
type Result struct {
	Text     string
	Words    int
	Sections []types.SectionStat
}

// PauseFunc blocks for d or until ctx is done.
type PauseFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default PauseFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Assembler generates an article section by section. Each call depends on
// the words written so far and the previous heading, so sections are
// generated strictly in order.
type Assembler struct {
	gen   provider.Generator
	delay time.Duration
	pause PauseFunc
	log   zerolog.Logger
}

// New returns an assembler that pauses delay between sections using Sleep.
func New(gen provider.Generator, delay time.Duration, log zerolog.Logger) *Assembler {
	return &Assembler{gen: gen, delay: delay, pause: Sleep, log: log}
}

// WithPause replaces the pause operation.
func (a *Assembler) WithPause(p PauseFunc) *Assembler {
	a.pause = p
	return a
}

// Assemble writes every section of req in order. Any generation failure
// aborts the whole article; no partial text is returned.
func (a *Assembler) Assemble(ctx context.Context, req Request) (Result, error) {
	if len(req.Sections) == 0 {
		return Result{}, fmt.Errorf("assembling %q: no sections", req.Title)
	}

	var (
		buf     strings.Builder
		written int
		summary = firstSummary
		stats   = make([]types.SectionStat, 0, len(req.Sections))
	)

	for i, heading := range req.Sections {
		remaining := len(req.Sections) - i
		target := Target(req.TotalWords, written, remaining)

		prompt, err := renderSectionPrompt(sectionPromptData{
			Title:       req.Title,
			Brand:       req.Brand,
			Total:       req.TotalWords,
			Written:     written,
			Remaining:   req.TotalWords - written,
			Heading:     heading,
			Subheadings: req.subheadings(i),
			Target:      target,
			Summary:     summary,
		})
		if err != nil {
			return Result{}, fmt.Errorf("rendering prompt for section %d: %w", i+1, err)
		}

		text, err := a.gen.Generate(ctx, prompt)
		if err != nil {
			return Result{}, fmt.Errorf("generating section %d (%s): %w", i+1, heading, err)
		}

		words := CountWords(text)
		buf.WriteString(text)
		buf.WriteString("\n\n")
		written += words
		summary = previousSummary(heading)
		stats = append(stats, types.SectionStat{Heading: heading, TargetWords: target, Words: words})

		a.log.Debug().
			Int("section", i+1).
			Int("of", len(req.Sections)).
			Str("heading", heading).
			Int("target", target).
			Int("words", words).
			Int("written", written).
			Msg("section generated")

		if i < len(req.Sections)-1 && a.pause != nil {
			if err := a.pause(ctx, a.delay); err != nil {
				return Result{}, fmt.Errorf("pausing after section %d: %w", i+1, err)
			}
		}
	}

	return Result{Text: buf.String(), Words: written, Sections: stats}, nil
}

// previousSummary quotes heading literally; %q would escape the zero-width
// joiners common in Persian text.
func previousSummary(heading string) string {
	return `The previous section covered "` + heading + `".`
}

func renderSectionPrompt(d sectionPromptData) (string, error) {
	var buf bytes.Buffer
	if err := sectionPromptTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r Request) subheadings(i int) []string {
	if i < len(r.Subheadings) {
		return r.Subheadings[i]
	}
	return nil
}
