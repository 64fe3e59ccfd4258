package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts the article and drops the footer", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Jane Doe</title><meta property="og:title" content="Jane Doe, Illustrator"></head>
<body>
<nav><a href="/">Home</a><a href="/work">Work</a></nav>
<article>
<h1>About</h1>
<p>Jane draws editorial illustrations for magazines and independent publishers.</p>
</article>
<footer><p>Copyright 2024 Jane Doe Studio</p></footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html, "https://jane.dev/about")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "editorial illustrations")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Jane Doe Studio")
	})

	t.Run("handles minimal markup", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(`<html><body><p>Simple content</p></body></html>`, "")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(" ", "https://jane.dev")

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})
}
