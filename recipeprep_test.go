package recipeprep_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/recipeprep"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := recipeprep.Errorf(recipeprep.EINVALID, "threshold %d out of range", 120)

	assert.Equal(t, recipeprep.EINVALID, recipeprep.ErrorCode(err))
	assert.Equal(t, "threshold 120 out of range", recipeprep.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading config: %w", recipeprep.Errorf(recipeprep.ENOTFOUND, "missing"))

	assert.Equal(t, recipeprep.ENOTFOUND, recipeprep.ErrorCode(err))
	assert.Equal(t, "missing", recipeprep.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, recipeprep.EINTERNAL, recipeprep.ErrorCode(err))
	assert.Equal(t, "Internal error", recipeprep.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, recipeprep.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, recipeprep.ErrorMessage(nil))
}
