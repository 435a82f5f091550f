// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"text/template"
)

var titlePromptTmpl = template.Must(template.New("title").Parse(
	`{{if .Competitors -}}
You are an expert SEO copywriter. Based on the main topic "{{.Topic}}" and the top {{len .Competitors}} competitor titles from Google search:
{{range .Competitors}}{{.}}
{{end}}
Suggest one new, superior, and SEO-friendly title in Persian that can outperform them. Return only the title text.
{{- else -}}
You are an expert SEO copywriter. Based on the main topic "{{.Topic}}", suggest one creative and SEO-friendly title in Persian. Return only the title text.
{{- end}}`))

type titlePromptData struct {
	Topic       string
	Competitors []string
}

var outlinePromptTmpl = template.Must(template.New("outline").Parse(
	`You are an SEO expert. Create a detailed outline in Persian for a blog post.
CONTEXT:
- Title: "{{.Title}}"
- Brief:
{{.Brief}}
- Competitors:
{{range .Competitors}}{{.}}
{{end}}
{{- if .Brand}}- Brand: "{{.Brand}}"
{{end}}
{{- if .Source}}
THE EXISTING ARTICLE TO IMPROVE ON:
---
{{.Source}}
---
{{end}}
INSTRUCTIONS:
- Use Persian Markdown (##, ###)
- Create optimal structure: 3-5 H2 sections with 2-3 H3 subheadings each
- The outline must support an article of ~{{.WordCount}} words
{{- if .Source}}
- Cover what the existing article covers, fill its gaps, and organize it better. Do not copy its headings.
{{- end}}
{{- if .FAQ}}
- Finish with an H2 FAQ section (سوالات متداول) containing {{.FAQ}} questions as H3 headings
{{- end}}
- Return ONLY the Markdown outline`))

type outlinePromptData struct {
	Title       string
	Brief       string
	Competitors []string
	Brand       string
	Source      string
	WordCount   string
	FAQ         int
}

var refinePromptTmpl = template.Must(template.New("refine").Parse(`
You are an expert content editor. A first draft of a blog post outline has been generated. The user has provided feedback to refine it.
CONTEXT:
- Final Approved Title: "{{.Title}}"
- Original Content Brief:
{{.Brief}}
THE ORIGINAL OUTLINE (Version 1):
---
{{.Outline}}
---
USER'S INSTRUCTIONS FOR REFINEMENT:
---
"{{.Instruction}}"
---
YOUR TASK:
- Read the original outline and the user's instructions carefully.
- Generate a NEW AND IMPROVED outline that incorporates the user's feedback.
- The new outline must still be in Persian and use Markdown headings (## for H2, ### for H3).
- Maintain optimal structure: 3-5 H2 sections with 2-3 H3 subheadings each
- Return ONLY the new, complete Markdown outline. Do not add any other commentary.
`))

type refinePromptData struct {
	Title       string
	Brief       string
	Outline     string
	Instruction string
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
