package recipeprep

// PageMeta holds descriptive metadata read from a page's head, used to
// label stored excerpts.
type PageMeta struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Sitename    string `json:"sitename,omitempty"`
	Description string `json:"description,omitempty"`
}

// MetaExtractor reads page metadata from raw HTML.
type MetaExtractor interface {
	// ExtractMeta returns the page's metadata. Returns EINVALID for blank
	// input. Fields the page does not declare are left empty.
	ExtractMeta(html string) (*PageMeta, error)
}

// MetaExtractors combines extractors. Each empty field is filled from the
// first extractor that reports it.
type MetaExtractors []MetaExtractor

// ExtractMeta merges the metadata of every extractor. It fails only when
// all of them fail, returning the first error.
func (m MetaExtractors) ExtractMeta(html string) (*PageMeta, error) {
	var merged PageMeta
	var firstErr error
	ok := false
	for _, e := range m {
		meta, err := e.ExtractMeta(html)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ok = true
		fill(&merged.Title, meta.Title)
		fill(&merged.Author, meta.Author)
		fill(&merged.Sitename, meta.Sitename)
		fill(&merged.Description, meta.Description)
	}
	if !ok {
		if firstErr == nil {
			firstErr = Errorf(EINVALID, "no metadata extractors")
		}
		return nil, firstErr
	}
	return &merged, nil
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
