// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the article-generation stages: title, outline,
// outline refinement, and article. Each stage reads what it needs from the
// brief and earlier stage outputs, builds its prompt, and calls a provider.
// Stages hold no state between calls.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/content-engine/internal/article"
	"github.com/pdiddy/content-engine/internal/brief"
	"github.com/pdiddy/content-engine/internal/outline"
	"github.com/pdiddy/content-engine/internal/provider"
	"github.com/pdiddy/content-engine/internal/render"
	"github.com/pdiddy/content-engine/internal/search"
	"github.com/pdiddy/content-engine/pkg/types"
)

// MaxCompetitorTitles caps the search results quoted in the title prompt.
const MaxCompetitorTitles = 5

// ErrUnknownTask is returned by Execute for a task it does not run.
var ErrUnknownTask = errors.New("unknown task")

// InputError reports a missing or unusable stage input. It is raised before
// any network call and is never retried.
type InputError struct {
	Stage  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

func inputErr(stage, reason string) error {
	return &InputError{Stage: stage, Reason: reason}
}

// Providers resolves a provider identifier to a Generator. An empty name
// selects the default provider.
type Providers interface {
	Provider(name string) (provider.Generator, error)
}

// Fetcher returns the readable text of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Orchestrator runs pipeline stages.
type Orchestrator struct {
	providers Providers
	search    search.Provider
	fetcher   Fetcher
	cfg       types.GenerationConfig
	pause     article.PauseFunc
	log       zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSearch enables competitor-title lookups in the title stage.
func WithSearch(p search.Provider) Option {
	return func(o *Orchestrator) { o.search = p }
}

// WithFetcher enables the rewrite variant of the outline stage for briefs
// that carry a source URL.
func WithFetcher(f Fetcher) Option {
	return func(o *Orchestrator) { o.fetcher = f }
}

// WithPause replaces the pause between article sections.
func WithPause(p article.PauseFunc) Option {
	return func(o *Orchestrator) { o.pause = p }
}

// New returns an Orchestrator. Zero values in cfg fall back to the defaults.
func New(providers Providers, cfg types.GenerationConfig, log zerolog.Logger, opts ...Option) *Orchestrator {
	def := types.DefaultConfig().Generation
	if cfg.DefaultWordCount <= 0 {
		cfg.DefaultWordCount = def.DefaultWordCount
	}
	if cfg.SectionDelay < 0 {
		cfg.SectionDelay = 0
	}
	o := &Orchestrator{
		providers: providers,
		cfg:       cfg,
		pause:     article.Sleep,
		log:       log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Execute runs the stage named by req.Task and returns its result struct.
func (o *Orchestrator) Execute(ctx context.Context, req types.TaskRequest) (any, error) {
	switch req.Task {
	case types.TaskTitle:
		return o.Title(ctx, TitleInput{Model: req.Model, Brief: req.Brief, UseSearch: req.UseGoogleSearch})
	case types.TaskOutline:
		return o.Outline(ctx, OutlineInput{Model: req.Model, Brief: req.Brief, FinalTitle: req.FinalTitle, TopTitles: req.TopTitles})
	case types.TaskRefineOutline:
		return o.RefineOutline(ctx, RefineInput{
			Model:       req.Model,
			Brief:       req.Brief,
			FinalTitle:  req.FinalTitle,
			Outline:     req.Outline,
			Instruction: req.RefinementPrompt,
		})
	case types.TaskArticle:
		return o.Article(ctx, ArticleInput{
			Model:      req.Model,
			Brief:      req.Brief,
			FinalTitle: req.FinalTitle,
			Outline:    req.Outline,
			Format:     req.Format,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, req.Task)
	}
}

// TitleInput holds the title stage inputs.
type TitleInput struct {
	Model     string
	Brief     *types.Brief
	UseSearch bool
}

// Title suggests one title for the brief's topic, optionally informed by the
// titles of competing search results.
func (o *Orchestrator) Title(ctx context.Context, in TitleInput) (types.TitleResult, error) {
	topic, ok := brief.New(in.Brief).Topic()
	if !ok {
		return types.TitleResult{}, inputErr(types.TaskTitle, "brief has no topic column")
	}
	gen, err := o.providers.Provider(in.Model)
	if err != nil {
		return types.TitleResult{}, err
	}

	competitors := []string{}
	if in.UseSearch {
		competitors = o.competitorTitles(ctx, topic)
	}

	prompt, err := execute(titlePromptTmpl, titlePromptData{Topic: topic, Competitors: competitors})
	if err != nil {
		return types.TitleResult{}, fmt.Errorf("rendering title prompt: %w", err)
	}
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return types.TitleResult{}, fmt.Errorf("generating title: %w", err)
	}

	res := types.TitleResult{
		OriginalTopic:  topic,
		SourceTitles:   competitors,
		SuggestedTitle: strings.TrimSpace(text),
	}
	o.log.Info().Str("stage", types.TaskTitle).Int("competitors", len(competitors)).Msg("title generated")
	return res, nil
}

// competitorTitles never fails: a missing provider or a failed lookup yields
// no titles.
func (o *Orchestrator) competitorTitles(ctx context.Context, topic string) []string {
	if o.search == nil {
		o.log.Warn().Msg("search requested but no search provider is configured")
		return []string{}
	}
	titles, err := o.search.Search(ctx, topic)
	if err != nil {
		o.log.Warn().Err(err).Str("query", topic).Msg("search failed, continuing without competitor titles")
		return []string{}
	}
	if len(titles) > MaxCompetitorTitles {
		titles = titles[:MaxCompetitorTitles]
	}
	if titles == nil {
		titles = []string{}
	}
	return titles
}

// OutlineInput holds the outline stage inputs.
type OutlineInput struct {
	Model      string
	Brief      *types.Brief
	FinalTitle string
	TopTitles  []string
}

// Outline drafts a Markdown outline for the final title.
func (o *Orchestrator) Outline(ctx context.Context, in OutlineInput) (types.OutlineResult, error) {
	title := strings.TrimSpace(in.FinalTitle)
	if title == "" {
		return types.OutlineResult{}, inputErr(types.TaskOutline, "final title is required")
	}
	if in.Brief == nil {
		return types.OutlineResult{}, inputErr(types.TaskOutline, "brief is required")
	}
	gen, err := o.providers.Provider(in.Model)
	if err != nil {
		return types.OutlineResult{}, err
	}

	b := brief.New(in.Brief)
	data := outlinePromptData{
		Title:       title,
		Brief:       b.Render(),
		Competitors: in.TopTitles,
		Brand:       b.Brand(),
		WordCount:   b.WordCountText(o.cfg.DefaultWordCount),
		FAQ:         b.FAQCount(),
		Source:      o.sourceText(ctx, b.SourceURL()),
	}

	prompt, err := execute(outlinePromptTmpl, data)
	if err != nil {
		return types.OutlineResult{}, fmt.Errorf("rendering outline prompt: %w", err)
	}
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return types.OutlineResult{}, fmt.Errorf("generating outline: %w", err)
	}

	o.log.Info().Str("stage", types.TaskOutline).Bool("rewrite", data.Source != "").Msg("outline generated")
	return types.OutlineResult{Outline: text}, nil
}

// sourceText fetches the article a brief asks to rewrite. Failures fall back
// to the plain outline prompt.
func (o *Orchestrator) sourceText(ctx context.Context, url string) string {
	if url == "" || o.fetcher == nil {
		return ""
	}
	text, err := o.fetcher.Fetch(ctx, url)
	if err != nil {
		o.log.Warn().Err(err).Str("url", url).Msg("fetching source article failed, using plain outline prompt")
		return ""
	}
	return strings.TrimSpace(text)
}

// RefineInput holds the outline-refinement stage inputs.
type RefineInput struct {
	Model       string
	Brief       *types.Brief
	FinalTitle  string
	Outline     string
	Instruction string
}

// RefineOutline rewrites an outline according to a natural-language
// instruction and returns the full replacement.
func (o *Orchestrator) RefineOutline(ctx context.Context, in RefineInput) (types.OutlineResult, error) {
	switch {
	case strings.TrimSpace(in.FinalTitle) == "":
		return types.OutlineResult{}, inputErr(types.TaskRefineOutline, "final title is required")
	case strings.TrimSpace(in.Outline) == "":
		return types.OutlineResult{}, inputErr(types.TaskRefineOutline, "outline is required")
	case strings.TrimSpace(in.Instruction) == "":
		return types.OutlineResult{}, inputErr(types.TaskRefineOutline, "refinement instruction is required")
	case in.Brief == nil:
		return types.OutlineResult{}, inputErr(types.TaskRefineOutline, "brief is required")
	}
	gen, err := o.providers.Provider(in.Model)
	if err != nil {
		return types.OutlineResult{}, err
	}

	prompt, err := execute(refinePromptTmpl, refinePromptData{
		Title:       strings.TrimSpace(in.FinalTitle),
		Brief:       brief.New(in.Brief).Render(),
		Outline:     in.Outline,
		Instruction: in.Instruction,
	})
	if err != nil {
		return types.OutlineResult{}, fmt.Errorf("rendering refinement prompt: %w", err)
	}
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return types.OutlineResult{}, fmt.Errorf("refining outline: %w", err)
	}

	o.log.Info().Str("stage", types.TaskRefineOutline).Msg("outline refined")
	return types.OutlineResult{Outline: text}, nil
}

// ArticleInput holds the article stage inputs.
type ArticleInput struct {
	Model      string
	Brief      *types.Brief
	FinalTitle string
	Outline    string
	Format     types.ArticleFormat
}

// Article writes the full article one outline section at a time.
func (o *Orchestrator) Article(ctx context.Context, in ArticleInput) (types.ArticleResult, error) {
	title := strings.TrimSpace(in.FinalTitle)
	switch {
	case title == "":
		return types.ArticleResult{}, inputErr(types.TaskArticle, "final title is required")
	case strings.TrimSpace(in.Outline) == "":
		return types.ArticleResult{}, inputErr(types.TaskArticle, "outline is required")
	case in.Brief == nil:
		return types.ArticleResult{}, inputErr(types.TaskArticle, "brief is required")
	}
	switch in.Format {
	case "", types.FormatMarkdown, types.FormatHTML:
	default:
		return types.ArticleResult{}, inputErr(types.TaskArticle, fmt.Sprintf("unsupported format %q", in.Format))
	}

	sections, err := outline.Sections(in.Outline)
	if err != nil {
		return types.ArticleResult{}, &InputError{Stage: types.TaskArticle, Reason: "outline has no ## headings", Err: err}
	}
	gen, err := o.providers.Provider(in.Model)
	if err != nil {
		return types.ArticleResult{}, err
	}

	b := brief.New(in.Brief)
	total := b.WordCount(o.cfg.DefaultWordCount)

	asm := article.New(gen, o.cfg.SectionDelay, o.log).WithPause(o.pause)
	res, err := asm.Assemble(ctx, article.Request{
		Title:       title,
		Sections:    sections,
		Subheadings: outline.Subheadings(in.Outline),
		TotalWords:  total,
		Brand:       b.Brand(),
	})
	if err != nil {
		return types.ArticleResult{}, err
	}

	out := types.ArticleResult{
		Article:     res.Text,
		TargetWords: total,
		Words:       res.Words,
		Sections:    res.Sections,
	}
	if in.Format == types.FormatHTML {
		html, err := render.HTML(res.Text)
		if err != nil {
			return types.ArticleResult{}, err
		}
		out.ArticleHTML = html
	}

	o.log.Info().
		Str("stage", types.TaskArticle).
		Int("sections", len(sections)).
		Int("target_words", total).
		Int("words", res.Words).
		Msg("article generated")
	return out, nil
}
