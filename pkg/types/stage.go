// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Task names accepted at the process boundary.
const (
	TaskLogin         = "login"
	TaskTitle         = "get_title_suggestions"
	TaskOutline       = "generate_outline"
	TaskRefineOutline = "refine_outline"
	TaskArticle       = "generate_article"
)

// ArticleFormat selects how the assembled article is returned.
type ArticleFormat string

const (
	FormatMarkdown ArticleFormat = "markdown"
	FormatHTML     ArticleFormat = "html"
)

// TaskRequest is the JSON object posted by callers. Task selects the stage;
// the remaining fields are read by the stages that need them.
type TaskRequest struct {
	Task string `json:"task" yaml:"task"`

	// Model is the provider identifier. Empty selects the configured default.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	Brief *Brief `json:"brief,omitempty" yaml:"brief,omitempty"`

	// UseGoogleSearch asks the title stage for competitor titles.
	UseGoogleSearch bool `json:"use_google_search,omitempty" yaml:"use_google_search,omitempty"`

	FinalTitle       string   `json:"final_title,omitempty" yaml:"final_title,omitempty"`
	TopTitles        []string `json:"top_titles,omitempty" yaml:"top_titles,omitempty"`
	Outline          string   `json:"outline,omitempty" yaml:"outline,omitempty"`
	RefinementPrompt string   `json:"refinement_prompt,omitempty" yaml:"refinement_prompt,omitempty"`

	Format ArticleFormat `json:"format,omitempty" yaml:"format,omitempty"`

	Username string `json:"username,omitempty" yaml:"-"`
	Password string `json:"password,omitempty" yaml:"-"`
}

// TitleResult is the output of the title stage.
type TitleResult struct {
	OriginalTopic  string   `json:"original_topic" yaml:"original_topic"`
	SourceTitles   []string `json:"source_titles" yaml:"source_titles"`
	SuggestedTitle string   `json:"ai_suggested_title" yaml:"ai_suggested_title"`
}

// OutlineResult is the output of the outline and outline-refinement stages.
type OutlineResult struct {
	Outline string `json:"generated_outline" yaml:"generated_outline"`
}

// SectionStat records the budget and actual length of one generated section.
type SectionStat struct {
	Heading     string `json:"heading" yaml:"heading"`
	TargetWords int    `json:"target_words" yaml:"target_words"`
	Words       int    `json:"words" yaml:"words"`
}

// ArticleResult is the output of the article stage.
type ArticleResult struct {
	Article     string        `json:"generated_article" yaml:"generated_article"`
	ArticleHTML string        `json:"generated_article_html,omitempty" yaml:"generated_article_html,omitempty"`
	TargetWords int           `json:"target_words" yaml:"target_words"`
	Words       int           `json:"word_count" yaml:"word_count"`
	Sections    []SectionStat `json:"sections" yaml:"sections"`
}

// LoginResult is returned by a successful credential check.
type LoginResult struct {
	Success bool `json:"success" yaml:"success"`
}
