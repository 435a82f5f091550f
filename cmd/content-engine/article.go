// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/internal/render"
	"github.com/pdiddy/content-engine/pkg/types"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Write the full article section by section",
	Long: `Article writes one section per ## heading of the outline, in order. Each
section gets a share of the brief's word count (at least 150 words), adjusted
for what earlier sections actually produced. Any failed section aborts the
article.

With --format html the text output is a standalone right-to-left HTML page and
structured output carries the rendered fragment alongside the Markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		briefPath, _ := cmd.Flags().GetString("brief")
		model, _ := cmd.Flags().GetString("model")
		title, _ := cmd.Flags().GetString("title")
		outlinePath, _ := cmd.Flags().GetString("outline")
		format, _ := cmd.Flags().GetString("format")

		b, err := loadBrief(briefPath)
		if err != nil {
			return err
		}
		outline, err := readText(outlinePath, cmd.InOrStdin())
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}

		res, err := a.pipeline.Article(cmd.Context(), pipeline.ArticleInput{
			Model:      model,
			Brief:      b,
			FinalTitle: title,
			Outline:    outline,
			Format:     types.ArticleFormat(format),
		})
		if err != nil {
			return err
		}

		text := res.Article
		if res.ArticleHTML != "" {
			if text, err = render.Page(title, res.Article); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d sections, %d words (target %d)\n", len(res.Sections), res.Words, res.TargetWords)
		return emit(cmd, res, text)
	},
}

func init() {
	articleCmd.Flags().String("brief", "", "brief file (YAML or JSON with headers and rowData)")
	articleCmd.Flags().String("model", "", "provider identifier (default from config)")
	articleCmd.Flags().String("title", "", "final article title")
	articleCmd.Flags().String("outline", "", "outline file (- for stdin)")
	articleCmd.Flags().String("format", string(types.FormatMarkdown), "article format: markdown or html")
	addOutputFlags(articleCmd)

	rootCmd.AddCommand(articleCmd)
}
