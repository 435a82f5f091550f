// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/pipeline"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Draft a Markdown outline for the final title",
	Long: `Outline asks the provider for a Persian Markdown outline with 3-5 ## sections
and 2-3 ### sub-headings each, sized for the brief's word count (1500 when the
brief has none). When the brief links an existing article (url, link, لینک), the
page is fetched and the outline is written to improve on it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		briefPath, _ := cmd.Flags().GetString("brief")
		model, _ := cmd.Flags().GetString("model")
		title, _ := cmd.Flags().GetString("title")
		competitors, _ := cmd.Flags().GetStringArray("competitor")

		b, err := loadBrief(briefPath)
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}

		res, err := a.pipeline.Outline(cmd.Context(), pipeline.OutlineInput{
			Model:      model,
			Brief:      b,
			FinalTitle: title,
			TopTitles:  competitors,
		})
		if err != nil {
			return err
		}
		return emit(cmd, res, res.Outline)
	},
}

func init() {
	outlineCmd.Flags().String("brief", "", "brief file (YAML or JSON with headers and rowData)")
	outlineCmd.Flags().String("model", "", "provider identifier (default from config)")
	outlineCmd.Flags().String("title", "", "final article title")
	outlineCmd.Flags().StringArray("competitor", nil, "competitor title to consider (repeatable)")
	addOutputFlags(outlineCmd)

	rootCmd.AddCommand(outlineCmd)
}
