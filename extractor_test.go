package folio_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleOf(content string, err error) *mock.ArticleExtractor {
	return &mock.ArticleExtractor{
		ExtractFn: func(_, _ string) (*folio.Article, error) {
			if err != nil {
				return nil, err
			}
			return &folio.Article{Title: "t", ContentHTML: content}, nil
		},
	}
}

func TestArticleExtractors(t *testing.T) {
	t.Parallel()

	t.Run("first article with content wins", func(t *testing.T) {
		t.Parallel()

		var called bool
		second := &mock.ArticleExtractor{
			ExtractFn: func(_, _ string) (*folio.Article, error) {
				called = true
				return nil, nil
			},
		}

		article, err := folio.ArticleExtractors{articleOf("<p>primary</p>", nil), second}.Extract("<html></html>", "https://jane.dev")

		require.NoError(t, err)
		assert.Equal(t, "<p>primary</p>", article.ContentHTML)
		assert.False(t, called)
	})

	t.Run("empty result falls through to the next extractor", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		fallback := &mock.ArticleExtractor{
			ExtractFn: func(_, pageURL string) (*folio.Article, error) {
				gotURL = pageURL
				return &folio.Article{ContentHTML: "<p>fallback</p>"}, nil
			},
		}

		article, err := folio.ArticleExtractors{articleOf("  ", nil), fallback}.Extract("<html></html>", "https://jane.dev")

		require.NoError(t, err)
		assert.Equal(t, "<p>fallback</p>", article.ContentHTML)
		assert.Equal(t, "https://jane.dev", gotURL)
	})

	t.Run("error falls through to the next extractor", func(t *testing.T) {
		t.Parallel()

		article, err := folio.ArticleExtractors{articleOf("", errors.New("boom")), articleOf("<p>ok</p>", nil)}.Extract("<p>x</p>", "")

		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", article.ContentHTML)
	})

	t.Run("empty article beats errors", func(t *testing.T) {
		t.Parallel()

		article, err := folio.ArticleExtractors{articleOf("", errors.New("boom")), articleOf("", nil)}.Extract("<p>x</p>", "")

		require.NoError(t, err)
		assert.Empty(t, article.ContentHTML)
	})

	t.Run("all failing joins errors", func(t *testing.T) {
		t.Parallel()

		_, err := folio.ArticleExtractors{articleOf("", errors.New("first")), articleOf("", errors.New("second"))}.Extract("<p>x</p>", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "first")
		assert.Contains(t, err.Error(), "second")
	})
}
