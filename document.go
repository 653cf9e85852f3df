package recipeprep

import "unicode/utf8"

// Document is the raw page handed to the pipeline.
// It is owned by the caller; strategies parse their own working copies
// and never keep a reference after returning.
type Document struct {
	// HTML is the raw page markup. Empty means there is nothing to process.
	HTML string `json:"html"`

	// SourceURL identifies the page. It is only used as a label for
	// logs and metrics.
	SourceURL string `json:"sourceUrl"`
}

// Size returns the length of the document in characters.
func (d *Document) Size() int {
	return Size(d.HTML)
}

// Size returns the length of s in characters (runes), the unit every
// size threshold and metric in this package is expressed in.
func Size(s string) int {
	return utf8.RuneCountInString(s)
}
