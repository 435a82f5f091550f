// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/pipeline"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Rewrite an outline according to an instruction",
	RunE: func(cmd *cobra.Command, args []string) error {
		briefPath, _ := cmd.Flags().GetString("brief")
		model, _ := cmd.Flags().GetString("model")
		title, _ := cmd.Flags().GetString("title")
		outlinePath, _ := cmd.Flags().GetString("outline")
		instruction, _ := cmd.Flags().GetString("instruction")

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

		res, err := a.pipeline.RefineOutline(cmd.Context(), pipeline.RefineInput{
			Model:       model,
			Brief:       b,
			FinalTitle:  title,
			Outline:     outline,
			Instruction: instruction,
		})
		if err != nil {
			return err
		}
		return emit(cmd, res, res.Outline)
	},
}

func init() {
	refineCmd.Flags().String("brief", "", "brief file (YAML or JSON with headers and rowData)")
	refineCmd.Flags().String("model", "", "provider identifier (default from config)")
	refineCmd.Flags().String("title", "", "final article title")
	refineCmd.Flags().String("outline", "", "outline file to refine (- for stdin)")
	refineCmd.Flags().String("instruction", "", "what to change in the outline")
	addOutputFlags(refineCmd)

	rootCmd.AddCommand(refineCmd)
}
