// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline reads Markdown outlines produced by the outline stage.
package outline

import (
	"errors"
	"strings"
)

// ErrNoSections is returned when an outline has no major (##) heading.
var ErrNoSections = errors.New("outline has no ## sections")

// majorPrefix marks a top-level article section. Deeper headings (###) start
// with "###" and so never match "## ".
const majorPrefix = "## "

// Sections returns the outline's major heading lines in order, trimmed, with
// the "## " marker kept so they can be quoted back to the model verbatim.
func Sections(outline string) ([]string, error) {
	var headings []string
	for _, line := range strings.Split(outline, "\n") {
		trimmed := strings.TrimSpace(line)
		if isMajorHeading(trimmed) {
			headings = append(headings, trimmed)
		}
	}
	if len(headings) == 0 {
		return nil, ErrNoSections
	}
	return headings, nil
}

// Subheadings returns the ### lines under each major heading, indexed like
// the result of Sections, so repeated headings keep their own lists. Lines
// before the first major heading are ignored.
func Subheadings(outline string) [][]string {
	var subs [][]string
	for _, line := range strings.Split(outline, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case isMajorHeading(trimmed):
			subs = append(subs, nil)
		case len(subs) > 0 && strings.HasPrefix(trimmed, "### "):
			subs[len(subs)-1] = append(subs[len(subs)-1], trimmed)
		}
	}
	return subs
}

func isMajorHeading(line string) bool {
	return strings.HasPrefix(line, majorPrefix)
}
