// Package fs provides file-based storage for processed excerpts.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/recipeprep"
	"gopkg.in/yaml.v3"
)

// Ensure ExcerptStore implements recipeprep.ExcerptWriter at compile time.
var _ recipeprep.ExcerptWriter = (*ExcerptStore)(nil)

// ExcerptStore writes excerpts as files with YAML front matter.
// Excerpts are staged in baseDir/name.tmp and moved to baseDir/name on
// Commit, so an interrupted batch never leaves a half-written output.
type ExcerptStore struct {
	baseDir string
	name    string
}

// NewExcerptStore creates a new ExcerptStore.
func NewExcerptStore(baseDir, name string) *ExcerptStore {
	return &ExcerptStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ExcerptStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExcerptStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// ExcerptPath returns the relative file path for an excerpt:
// the source host as directory, the content hash as file name.
// Example: https://example.com/pie → example.com/9f2c1a7b3e4d5f60.md
func ExcerptPath(ex *recipeprep.Excerpt) string {
	dir := "unknown"
	if u, err := url.Parse(ex.SourceURL); err == nil && u.Hostname() != "" {
		dir = u.Hostname()
	}

	ext := ".html"
	if ex.Format == recipeprep.FormatMarkdown {
		ext = ".md"
	}

	return filepath.Join(dir, ex.ContentHash+ext)
}

// WriteExcerpt stages an excerpt on disk.
func (s *ExcerptStore) WriteExcerpt(ctx context.Context, ex *recipeprep.Excerpt) error {
	if err := ex.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), ExcerptPath(ex))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatExcerpt(ex)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

type frontMatter struct {
	Title    string `yaml:"title,omitempty"`
	Site     string `yaml:"site,omitempty"`
	Source   string `yaml:"source,omitempty"`
	Strategy string `yaml:"strategy"`
	Original int    `yaml:"original"`
	Cleaned  int    `yaml:"cleaned"`
	Created  string `yaml:"created"`
}

// FormatExcerpt formats an excerpt with YAML front matter.
func FormatExcerpt(ex *recipeprep.Excerpt) (string, error) {
	created := ex.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	fm, err := yaml.Marshal(frontMatter{
		Title:    ex.Title,
		Site:     ex.Sitename,
		Source:   ex.SourceURL,
		Strategy: string(ex.Strategy),
		Original: ex.OriginalSize,
		Cleaned:  ex.CleanedSize,
		Created:  created.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(ex.Content)
	return b.String(), nil
}

// Commit replaces the output directory with the staged excerpts.
func (s *ExcerptStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the staged excerpts.
func (s *ExcerptStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
