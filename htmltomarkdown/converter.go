// Package htmltomarkdown converts preprocessed recipe excerpts to Markdown.
package htmltomarkdown

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/recipeprep"
)

// Ensure Converter implements recipeprep.Converter at compile time.
var _ recipeprep.Converter = (*Converter)(nil)

const (
	ldOpen  = `<script type="application/ld+json">`
	ldClose = `</script>`
)

// Converter wraps html-to-markdown to convert excerpts to Markdown.
// Structured-data excerpts, which are a single JSON-LD script, become a
// fenced JSON block instead of being dropped with the script element.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an excerpt into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", recipeprep.Errorf(recipeprep.EINVALID, "empty HTML input")
	}

	if raw, ok := ldBody(html); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
			return "", recipeprep.Errorf(recipeprep.EINVALID, "invalid JSON-LD excerpt: %v", err)
		}
		return "```json\n" + buf.String() + "\n```\n", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ldBody returns the JSON inside an excerpt that consists of exactly one
// JSON-LD script element.
func ldBody(html string) (string, bool) {
	if !strings.HasPrefix(html, ldOpen) || !strings.HasSuffix(html, ldClose) {
		return "", false
	}
	body := html[len(ldOpen) : len(html)-len(ldClose)]
	if strings.Contains(body, ldClose) {
		return "", false
	}
	return body, true
}
