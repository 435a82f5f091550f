//go:build mage

package main

import (
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Stage targets run the CLI against BRIEF (default examples/brief.yaml) and
// write into output/. MODEL selects the provider.

func briefFile() string {
	if b := os.Getenv("BRIEF"); b != "" {
		return b
	}
	return "examples/brief.yaml"
}

func stageArgs(stage string, extra ...string) []string {
	args := []string{stage, "--brief", briefFile()}
	if m := os.Getenv("MODEL"); m != "" {
		args = append(args, "--model", m)
	}
	return append(args, extra...)
}

func finalTitle() string {
	if t := os.Getenv("TITLE"); t != "" {
		return t
	}
	data, err := os.ReadFile("output/title.txt")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Title suggests a title and writes output/title.txt.
func Title() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), stageArgs("title", "--search", "--out", "output/title.txt")...)
}

// Outline drafts an outline for TITLE (or output/title.txt) into output/outline.md.
func Outline() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), stageArgs("outline", "--title", finalTitle(), "--out", "output/outline.md")...)
}

// Article writes the article for output/outline.md into output/article.md.
func Article() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), stageArgs("article",
		"--title", finalTitle(),
		"--outline", "output/outline.md",
		"--out", "output/article.md")...)
}
