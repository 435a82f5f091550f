// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts generated Markdown into HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// HTML renders Markdown to an HTML fragment. Raw HTML in the input is
// omitted.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="fa" dir="rtl">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<article>
<h1>{{.Title}}</h1>
{{.Body}}
</article>
</body>
</html>
`))

// Page renders Markdown as a standalone right-to-left HTML document titled
// title.
func Page(title, markdown string) (string, error) {
	body, err := HTML(markdown)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = pageTmpl.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}
