// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/outline"
	"github.com/pdiddy/content-engine/internal/provider"
	"github.com/pdiddy/content-engine/pkg/types"
)

// --- fakes ---

// recordingGenerator returns reply (or replies in order) and records prompts.
type recordingGenerator struct {
	reply   string
	replies []string
	err     error
	prompts []string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if i := len(g.prompts) - 1; i < len(g.replies) {
		return g.replies[i], nil
	}
	return g.reply, nil
}

// fakeProviders hands out one generator and records the names asked for.
type fakeProviders struct {
	gen   *recordingGenerator
	names []string
}

func (f *fakeProviders) Provider(name string) (provider.Generator, error) {
	f.names = append(f.names, name)
	if name != "" && name != string(provider.Gemini) && name != string(provider.Groq) {
		return nil, provider.ErrUnknownProvider
	}
	return f.gen, nil
}

type fakeSearch struct {
	titles []string
	err    error
	calls  []string
}

func (s *fakeSearch) Search(_ context.Context, q string) ([]string, error) {
	s.calls = append(s.calls, q)
	return s.titles, s.err
}

type fakeFetcher struct {
	text  string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	return f.text, f.err
}

func noPause(context.Context, time.Duration) error { return nil }

func newTestOrchestrator(gen *recordingGenerator, opts ...Option) (*Orchestrator, *fakeProviders) {
	p := &fakeProviders{gen: gen}
	opts = append([]Option{WithPause(noPause)}, opts...)
	return New(p, types.GenerationConfig{}, zerolog.Nop(), opts...), p
}

func coffeeBrief() *types.Brief {
	return types.NewBrief(
		[]string{"موضوع", "تعداد کلمات", "برند", "FAQ"},
		[]string{"قهوه", "1600 کلمه", "کافه‌لند", "3"},
	)
}

// --- title ---

func TestTitleWithoutSearch(t *testing.T) {
	gen := &recordingGenerator{reply: "  راهنمای کامل قهوه \n"}
	s := &fakeSearch{titles: []string{"should not be used"}}
	o, _ := newTestOrchestrator(gen, WithSearch(s))

	res, err := o.Title(context.Background(), TitleInput{
		Brief: &types.Brief{Headers: []any{"موضوع"}, RowData: []any{"قهوه"}},
	})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "قهوه")
	assert.NotContains(t, gen.prompts[0], "competitor")
	assert.Empty(t, s.calls)

	assert.Equal(t, "قهوه", res.OriginalTopic)
	assert.Equal(t, []string{}, res.SourceTitles)
	assert.Equal(t, "راهنمای کامل قهوه", res.SuggestedTitle)
}

func TestTitleWithCompetitors(t *testing.T) {
	gen := &recordingGenerator{reply: "t"}
	s := &fakeSearch{titles: []string{"a", "b", "c", "d", "e", "f"}}
	o, _ := newTestOrchestrator(gen, WithSearch(s))

	res, err := o.Title(context.Background(), TitleInput{
		Brief:     types.NewBrief([]string{"Topic"}, []string{"coffee"}),
		UseSearch: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"coffee"}, s.calls)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.SourceTitles)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "top 5 competitor titles")
	assert.Contains(t, gen.prompts[0], "a\nb\nc\nd\ne\n")
	assert.NotContains(t, gen.prompts[0], "\nf\n")
}

func TestTitleSearchFailureDegrades(t *testing.T) {
	gen := &recordingGenerator{reply: "t"}
	s := &fakeSearch{err: errors.New("quota exceeded")}
	o, _ := newTestOrchestrator(gen, WithSearch(s))

	res, err := o.Title(context.Background(), TitleInput{
		Brief:     types.NewBrief([]string{"عنوان"}, []string{"چای"}),
		UseSearch: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.SourceTitles)
	assert.NotNil(t, res.SourceTitles)
	assert.NotContains(t, gen.prompts[0], "competitor")
}

func TestTitleSearchNotConfigured(t *testing.T) {
	gen := &recordingGenerator{reply: "t"}
	o, _ := newTestOrchestrator(gen)

	res, err := o.Title(context.Background(), TitleInput{
		Brief:     types.NewBrief([]string{"topic"}, []string{"x"}),
		UseSearch: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.SourceTitles)
	assert.Len(t, gen.prompts, 1)
}

func TestTitleProviderSelection(t *testing.T) {
	gen := &recordingGenerator{reply: "t"}
	o, p := newTestOrchestrator(gen)

	_, err := o.Title(context.Background(), TitleInput{Model: "groq-gpt-oss-20b", Brief: coffeeBrief()})
	require.NoError(t, err)
	assert.Equal(t, []string{"groq-gpt-oss-20b"}, p.names)

	_, err = o.Title(context.Background(), TitleInput{Model: "gpt-9", Brief: coffeeBrief()})
	assert.ErrorIs(t, err, provider.ErrUnknownProvider)
	assert.Len(t, gen.prompts, 1, "unknown provider makes no call")
}

// --- outline ---

func TestOutlinePrompt(t *testing.T) {
	gen := &recordingGenerator{reply: "## الف\n### ۱"}
	o, _ := newTestOrchestrator(gen)

	res, err := o.Outline(context.Background(), OutlineInput{
		Brief:      coffeeBrief(),
		FinalTitle: "راهنمای قهوه",
		TopTitles:  []string{"رقیب یک", "رقیب دو"},
	})
	require.NoError(t, err)
	assert.Equal(t, "## الف\n### ۱", res.Outline)

	require.Len(t, gen.prompts, 1)
	p := gen.prompts[0]
	assert.Contains(t, p, `- Title: "راهنمای قهوه"`)
	assert.Contains(t, p, "- موضوع: قهوه\n")
	assert.Contains(t, p, "- Competitors:\nرقیب یک\nرقیب دو\n")
	assert.Contains(t, p, "3-5 H2 sections with 2-3 H3 subheadings each")
	assert.Contains(t, p, "~1600 کلمه words")
	assert.Contains(t, p, `- Brand: "کافه‌لند"`)
	assert.Contains(t, p, "containing 3 questions")
	assert.NotContains(t, p, "EXISTING ARTICLE")
}

func TestOutlineDefaultWordCount(t *testing.T) {
	gen := &recordingGenerator{reply: "x"}
	o, _ := newTestOrchestrator(gen)

	_, err := o.Outline(context.Background(), OutlineInput{
		Brief:      types.NewBrief([]string{"topic"}, []string{"tea"}),
		FinalTitle: "Tea",
	})
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "~1500 words")
	assert.NotContains(t, gen.prompts[0], "Brand")
	assert.NotContains(t, gen.prompts[0], "FAQ")
}

func TestOutlineNonNumericWordCount(t *testing.T) {
	gen := &recordingGenerator{reply: "x"}
	o, _ := newTestOrchestrator(gen)

	_, err := o.Outline(context.Background(), OutlineInput{
		Brief:      types.NewBrief([]string{"topic", "تعداد کلمات"}, []string{"tea", "زیاد"}),
		FinalTitle: "Tea",
	})
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "~1500 words")
	assert.NotContains(t, gen.prompts[0], "~زیاد")
}

func TestOutlineRewriteVariant(t *testing.T) {
	gen := &recordingGenerator{reply: "x"}
	f := &fakeFetcher{text: "متن مقاله قدیمی"}
	o, _ := newTestOrchestrator(gen, WithFetcher(f))

	b := types.NewBrief([]string{"topic", "لینک مقاله"}, []string{"tea", "https://example.com/old"})
	_, err := o.Outline(context.Background(), OutlineInput{Brief: b, FinalTitle: "Tea"})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/old"}, f.calls)
	assert.Contains(t, gen.prompts[0], "THE EXISTING ARTICLE TO IMPROVE ON:\n---\nمتن مقاله قدیمی\n---")
	assert.Contains(t, gen.prompts[0], "Do not copy its headings.")
}

func TestOutlineRewriteFetchFailure(t *testing.T) {
	gen := &recordingGenerator{reply: "x"}
	f := &fakeFetcher{err: errors.New("404")}
	o, _ := newTestOrchestrator(gen, WithFetcher(f))

	b := types.NewBrief([]string{"topic", "url"}, []string{"tea", "https://example.com/old"})
	_, err := o.Outline(context.Background(), OutlineInput{Brief: b, FinalTitle: "Tea"})
	require.NoError(t, err)
	assert.Len(t, f.calls, 1)
	assert.NotContains(t, gen.prompts[0], "EXISTING ARTICLE")
}

// --- refine ---

func TestRefineOutline(t *testing.T) {
	gen := &recordingGenerator{reply: "## جدید"}
	o, _ := newTestOrchestrator(gen)

	res, err := o.RefineOutline(context.Background(), RefineInput{
		Brief:       coffeeBrief(),
		FinalTitle:  "راهنمای قهوه",
		Outline:     "## قدیمی",
		Instruction: "یک بخش درباره قهوه سرد اضافه کن",
	})
	require.NoError(t, err)
	assert.Equal(t, "## جدید", res.Outline)

	require.Len(t, gen.prompts, 1)
	p := gen.prompts[0]
	assert.Contains(t, p, `- Final Approved Title: "راهنمای قهوه"`)
	assert.Contains(t, p, "---\n## قدیمی\n---")
	assert.Contains(t, p, `"یک بخش درباره قهوه سرد اضافه کن"`)
}

// --- article ---

func TestArticle(t *testing.T) {
	gen := &recordingGenerator{replies: []string{
		"## الف\n" + strings.Repeat("واژه ", 499),
		"## ب\nمتن",
		"## ج\nمتن",
		"## د\nمتن",
	}}
	o, _ := newTestOrchestrator(gen)

	res, err := o.Article(context.Background(), ArticleInput{
		Brief:      coffeeBrief(),
		FinalTitle: "راهنمای قهوه",
		Outline:    "# عنوان\n## الف\n### یک\n## ب\n## ج\n## د\n",
	})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 4)
	assert.Contains(t, gen.prompts[0], "STRICTLY around 400 words")
	assert.Contains(t, gen.prompts[0], "### یک")
	assert.Contains(t, gen.prompts[0], `Mention "کافه‌لند"`)
	assert.Contains(t, gen.prompts[1], "STRICTLY around 367 words")

	assert.Equal(t, 1600, res.TargetWords)
	assert.Equal(t, 510, res.Words)
	assert.Len(t, res.Sections, 4)
	assert.True(t, strings.HasPrefix(res.Article, "## الف\n"))
	assert.Empty(t, res.ArticleHTML)
}

func TestArticleRepeatedHeadingKeepsOwnSubheadings(t *testing.T) {
	gen := &recordingGenerator{reply: "متن"}
	o, _ := newTestOrchestrator(gen)

	_, err := o.Article(context.Background(), ArticleInput{
		Brief:      coffeeBrief(),
		FinalTitle: "راهنمای قهوه",
		Outline:    "## نکات\n### دما\n## روش‌ها\n## نکات\n### آسیاب\n",
	})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 3)
	assert.Contains(t, gen.prompts[0], "### دما")
	assert.NotContains(t, gen.prompts[0], "### آسیاب")
	assert.Contains(t, gen.prompts[2], "### آسیاب")
	assert.NotContains(t, gen.prompts[2], "### دما")
}

func TestArticleHTML(t *testing.T) {
	gen := &recordingGenerator{reply: "## بخش\n\nمتن **مهم**"}
	o, _ := newTestOrchestrator(gen)

	res, err := o.Article(context.Background(), ArticleInput{
		Brief:      coffeeBrief(),
		FinalTitle: "t",
		Outline:    "## بخش",
		Format:     types.FormatHTML,
	})
	require.NoError(t, err)
	assert.Contains(t, res.ArticleHTML, "<strong>مهم</strong>")
}

func TestArticleFailureReturnsNoPartialText(t *testing.T) {
	gen := &recordingGenerator{err: &provider.ExhaustedError{Provider: provider.Gemini, Attempts: 2, Last: errors.New("500")}}
	o, _ := newTestOrchestrator(gen)

	res, err := o.Article(context.Background(), ArticleInput{Brief: coffeeBrief(), FinalTitle: "t", Outline: "## a\n## b"})
	var exhausted *provider.ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Empty(t, res.Article)
	assert.Len(t, gen.prompts, 1)
}

func TestArticleNoSections(t *testing.T) {
	gen := &recordingGenerator{reply: "x"}
	o, p := newTestOrchestrator(gen)

	_, err := o.Article(context.Background(), ArticleInput{
		Brief:      coffeeBrief(),
		FinalTitle: "t",
		Outline:    "### فقط زیرعنوان\nمتن",
	})
	var inErr *InputError
	require.True(t, errors.As(err, &inErr))
	assert.ErrorIs(t, err, outline.ErrNoSections)
	assert.Empty(t, gen.prompts)
	assert.Empty(t, p.names, "provider is not resolved for invalid input")
}

// --- input validation ---

func TestInputErrorsMakeNoCalls(t *testing.T) {
	b := coffeeBrief()
	tests := []struct {
		name string
		req  types.TaskRequest
	}{
		{"title without topic", types.TaskRequest{Task: types.TaskTitle, Brief: types.NewBrief([]string{"other"}, []string{"x"})}},
		{"title with empty topic", types.TaskRequest{Task: types.TaskTitle, Brief: types.NewBrief([]string{"topic"}, []string{"  "})}},
		{"title with misaligned brief", types.TaskRequest{Task: types.TaskTitle, Brief: &types.Brief{Headers: []any{"topic", "x"}, RowData: []any{"a"}}}},
		{"title without brief", types.TaskRequest{Task: types.TaskTitle}},
		{"outline without title", types.TaskRequest{Task: types.TaskOutline, Brief: b}},
		{"outline without brief", types.TaskRequest{Task: types.TaskOutline, FinalTitle: "t"}},
		{"refine without instruction", types.TaskRequest{Task: types.TaskRefineOutline, Brief: b, FinalTitle: "t", Outline: "## a"}},
		{"refine without outline", types.TaskRequest{Task: types.TaskRefineOutline, Brief: b, FinalTitle: "t", RefinementPrompt: "x"}},
		{"refine without brief", types.TaskRequest{Task: types.TaskRefineOutline, FinalTitle: "t", Outline: "## a", RefinementPrompt: "x"}},
		{"article without outline", types.TaskRequest{Task: types.TaskArticle, Brief: b, FinalTitle: "t"}},
		{"article without title", types.TaskRequest{Task: types.TaskArticle, Brief: b, Outline: "## a"}},
		{"article without brief", types.TaskRequest{Task: types.TaskArticle, FinalTitle: "t", Outline: "## a"}},
		{"article with bad format", types.TaskRequest{Task: types.TaskArticle, Brief: b, FinalTitle: "t", Outline: "## a", Format: "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &recordingGenerator{reply: "x"}
			o, _ := newTestOrchestrator(gen)

			_, err := o.Execute(context.Background(), tt.req)
			var inErr *InputError
			require.True(t, errors.As(err, &inErr), "got %v", err)
			assert.Equal(t, tt.req.Task, inErr.Stage)
			assert.Empty(t, gen.prompts)
		})
	}
}

func TestExecuteDispatch(t *testing.T) {
	gen := &recordingGenerator{reply: "## a"}
	o, _ := newTestOrchestrator(gen)
	b := coffeeBrief()

	got, err := o.Execute(context.Background(), types.TaskRequest{Task: types.TaskTitle, Brief: b})
	require.NoError(t, err)
	assert.IsType(t, types.TitleResult{}, got)

	got, err = o.Execute(context.Background(), types.TaskRequest{Task: types.TaskOutline, Brief: b, FinalTitle: "t"})
	require.NoError(t, err)
	assert.IsType(t, types.OutlineResult{}, got)

	got, err = o.Execute(context.Background(), types.TaskRequest{Task: types.TaskRefineOutline, Brief: b, FinalTitle: "t", Outline: "## a", RefinementPrompt: "r"})
	require.NoError(t, err)
	assert.IsType(t, types.OutlineResult{}, got)

	got, err = o.Execute(context.Background(), types.TaskRequest{Task: types.TaskArticle, Brief: b, FinalTitle: "t", Outline: "## a"})
	require.NoError(t, err)
	assert.IsType(t, types.ArticleResult{}, got)

	_, err = o.Execute(context.Background(), types.TaskRequest{Task: "dance"})
	assert.ErrorIs(t, err, ErrUnknownTask)
}

