package folio_test

import (
	"testing"

	"github.com/fwojciec/folio"
	"github.com/stretchr/testify/assert"
)

func TestPlatform_Valid(t *testing.T) {
	t.Parallel()

	for _, p := range []folio.Platform{folio.PlatformGeneric, folio.PlatformCanva, folio.PlatformBehance, folio.PlatformDribbble} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, folio.Platform("myspace").Valid())
	assert.False(t, folio.Platform("").Valid())
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []folio.Status{folio.StatusPending, folio.StatusCompleted, folio.StatusFailed} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, folio.Status("done").Valid())
}

func TestScrapeRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a minimal record", func(t *testing.T) {
		t.Parallel()

		r := &folio.ScrapeRecord{URL: "https://a.com"}
		assert.NoError(t, r.Validate())
	})

	t.Run("requires url", func(t *testing.T) {
		t.Parallel()

		r := &folio.ScrapeRecord{Platform: folio.PlatformGeneric}
		err := r.Validate()
		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
		assert.Equal(t, "record URL required", folio.ErrorMessage(err))
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		t.Parallel()

		r := &folio.ScrapeRecord{URL: "https://a.com", Platform: "myspace"}
		assert.Equal(t, folio.EINVALID, folio.ErrorCode(r.Validate()))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		r := &folio.ScrapeRecord{URL: "https://a.com", Status: "done"}
		assert.Equal(t, folio.EINVALID, folio.ErrorCode(r.Validate()))
	})
}
