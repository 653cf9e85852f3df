package recipeprep

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an excerpt produced by the pipeline into Markdown.
	// Returns EINVALID for blank input.
	Convert(html string) (string, error)
}
