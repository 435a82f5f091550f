// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/pipeline"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Suggest a title for the brief's topic",
	Long: `Title reads the topic column of the brief (topic, عنوان, or موضوع) and asks
the provider for one SEO-friendly Persian title. With --search, the titles of
the top Google results are looked up first and the model is asked to beat
them; a failed search falls back to the plain prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		briefPath, _ := cmd.Flags().GetString("brief")
		model, _ := cmd.Flags().GetString("model")
		useSearch, _ := cmd.Flags().GetBool("search")

		b, err := loadBrief(briefPath)
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}

		res, err := a.pipeline.Title(cmd.Context(), pipeline.TitleInput{Model: model, Brief: b, UseSearch: useSearch})
		if err != nil {
			return err
		}
		return emit(cmd, res, res.SuggestedTitle)
	},
}

func init() {
	titleCmd.Flags().String("brief", "", "brief file (YAML or JSON with headers and rowData)")
	titleCmd.Flags().String("model", "", "provider identifier (default from config)")
	titleCmd.Flags().Bool("search", false, "look up competitor titles with Google Custom Search")
	addOutputFlags(titleCmd)

	rootCmd.AddCommand(titleCmd)
}
