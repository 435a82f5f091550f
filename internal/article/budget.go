// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import "strings"

// MinSectionWords is the floor for any section's word target.
const MinSectionWords = 150

// Target returns the word target for the next section: the words still owed
// spread evenly over the sections left, rounded up, never below
// MinSectionWords. A non-positive remaining is treated as one section.
func Target(total, written, remaining int) int {
	if remaining < 1 {
		remaining = 1
	}
	left := total - written
	t := left / remaining
	if left%remaining > 0 {
		t++
	}
	if t < MinSectionWords {
		return MinSectionWords
	}
	return t
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
