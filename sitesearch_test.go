package sitesearch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitesearch.Errorf(sitesearch.ETOOCOMPLEX, "page %q too deep", "guide/index.md")

	assert.Equal(t, sitesearch.ETOOCOMPLEX, sitesearch.ErrorCode(err))
	assert.Equal(t, "page \"guide/index.md\" too deep", sitesearch.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("section page: %w", sitesearch.Errorf(sitesearch.EINVALID, "bad"))

	assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	assert.Equal(t, "bad", sitesearch.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, sitesearch.EINTERNAL, sitesearch.ErrorCode(err))
	assert.Equal(t, "Internal error.", sitesearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitesearch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitesearch.ErrorMessage(nil))
}
