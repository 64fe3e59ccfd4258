package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Jane Doe</h1><h2>Selected work</h2><p>Brand identity for a coffee roaster.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Jane Doe")
		assert.Contains(t, md, "## Selected work")
		assert.Contains(t, md, "Brand identity for a coffee roaster.")
	})

	t.Run("converts links and images", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="https://jane.dev/work">my work</a>.</p><img src="https://jane.dev/a.png" alt="Poster">`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[my work](https://jane.dev/work)")
		assert.Contains(t, md, "![Poster](https://jane.dev/a.png)")
	})

	t.Run("converts lists and emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li><strong>Branding</strong></li><li><em>Editorial</em></li><li><del>Web</del></li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- **Branding**")
		assert.Contains(t, md, "- *Editorial*")
		assert.Contains(t, md, "~~Web~~")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Service</th><th>Rate</th></tr></thead>
<tbody><tr><td>Logo</td><td>1200</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Service")
		assert.Contains(t, md, "Logo")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("\n\n<p>Hello</p>\n\n")

		require.NoError(t, err)
		assert.Equal(t, "Hello", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert(" \n")

		require.Error(t, err)
		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})
}
