package recipeprep_test

import (
	"testing"

	"github.com/fwojciec/recipeprep"
	"github.com/stretchr/testify/assert"
)

func TestExcerpt_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid excerpt", func(t *testing.T) {
		t.Parallel()

		ex := &recipeprep.Excerpt{ContentHash: "abc", Format: recipeprep.FormatMarkdown}

		assert.NoError(t, ex.Validate())
	})

	t.Run("requires content hash", func(t *testing.T) {
		t.Parallel()

		ex := &recipeprep.Excerpt{Format: recipeprep.FormatHTML}

		assert.Equal(t, recipeprep.EINVALID, recipeprep.ErrorCode(ex.Validate()))
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		ex := &recipeprep.Excerpt{ContentHash: "abc", Format: "pdf"}

		assert.Equal(t, recipeprep.EINVALID, recipeprep.ErrorCode(ex.Validate()))
	})
}
