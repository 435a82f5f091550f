// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", outputText, "output format: text, json, or yaml")
	cmd.Flags().String("out", "", "write output to this file instead of stdout")
}

// writeResult prints v as JSON or YAML, or text for the text format.
func writeResult(w io.Writer, format string, v any, text string) error {
	switch format {
	case outputText, "":
		_, err := fmt.Fprintln(w, text)
		return err
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

// emit writes the result to --out or stdout according to --output.
func emit(cmd *cobra.Command, v any, text string) error {
	format, _ := cmd.Flags().GetString("output")
	path, _ := cmd.Flags().GetString("out")

	if path == "" {
		return writeResult(cmd.OutOrStdout(), format, v, text)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeResult(f, format, v, text); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
