package folio_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := folio.Errorf(folio.ENOTFOUND, "record %q not found", "abc")

	assert.Equal(t, folio.ENOTFOUND, folio.ErrorCode(err))
	assert.Equal(t, "record \"abc\" not found", folio.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, folio.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, folio.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("scrape: %w", folio.Errorf(folio.EINVALID, "bad url"))

	assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	assert.Equal(t, "bad url", folio.ErrorMessage(err))
}

func TestErrorCode_InternalForPlainErrors(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, folio.EINTERNAL, folio.ErrorCode(err))
	assert.Equal(t, "Internal error.", folio.ErrorMessage(err))
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("maps to EFETCH", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("fetch: %w", &folio.FetchError{URL: "https://a.com", StatusCode: 404})

		assert.Equal(t, folio.EFETCH, folio.ErrorCode(err))
		assert.Equal(t, "failed to fetch https://a.com: HTTP 404", folio.ErrorMessage(err))
	})

	t.Run("transport failures and server errors are temporary", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&folio.FetchError{Err: errors.New("dial")}).Temporary())
		assert.True(t, (&folio.FetchError{StatusCode: 503}).Temporary())
		assert.True(t, (&folio.FetchError{StatusCode: 429}).Temporary())
		assert.False(t, (&folio.FetchError{StatusCode: 404}).Temporary())
	})

	t.Run("unwraps transport error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		err := &folio.FetchError{URL: "https://a.com", Err: cause}

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
