// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the content pipeline:
// the caller's brief, stage requests and results, and configuration.
package types

// Brief is the caller-supplied description of the content to produce. Header i
// describes RowData[i]. Both sequences come straight from caller JSON or YAML,
// so cells may be strings, numbers, or null.
type Brief struct {
	// Headers holds the column headers in caller order.
	Headers []any `json:"headers" yaml:"headers"`

	// RowData holds one value per header.
	RowData []any `json:"rowData" yaml:"rowData"`
}

// NewBrief builds a Brief from aligned string headers and values.
func NewBrief(headers, values []string) *Brief {
	b := &Brief{
		Headers: make([]any, len(headers)),
		RowData: make([]any, len(values)),
	}
	for i, h := range headers {
		b.Headers[i] = h
	}
	for i, v := range values {
		b.RowData[i] = v
	}
	return b
}
