package scrape_test

import (
	"context"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/mock"
	"github.com/fwojciec/folio/scrape"
	"github.com/stretchr/testify/assert"
)

func namedStrategy(name string) *mock.Strategy {
	return &mock.Strategy{
		ExtractFn: func(_ context.Context, _ *folio.Page) (*folio.ExtractionResult, error) {
			return &folio.ExtractionResult{Title: name}, nil
		},
	}
}

func TestRegistry_Select(t *testing.T) {
	t.Parallel()

	generic := namedStrategy("generic")
	canva := namedStrategy("canva")

	t.Run("unknown host falls back to generic", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewDefaultRegistry(generic, canva)

		platform, strategy := r.Select("https://example.com/about")

		assert.Equal(t, folio.PlatformGeneric, platform)
		assert.Same(t, generic, strategy)
	})

	t.Run("canva site selects canva strategy", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewDefaultRegistry(generic, canva)

		platform, strategy := r.Select("https://jane.my.canva.site/portfolio")

		assert.Equal(t, folio.PlatformCanva, platform)
		assert.Same(t, canva, strategy)
	})

	t.Run("behance keeps generic strategy with its own tag", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewDefaultRegistry(generic, canva)

		platform, strategy := r.Select("https://www.Behance.net/jane")

		assert.Equal(t, folio.PlatformBehance, platform)
		assert.Same(t, generic, strategy)
	})

	t.Run("longest matching domain wins", func(t *testing.T) {
		t.Parallel()

		special := namedStrategy("special")
		r := scrape.NewRegistry(generic)
		r.Register(folio.PlatformGeneric, "site", generic)
		r.Register(folio.PlatformCanva, "canva.site", special)

		platform, strategy := r.Select("https://a.canva.site")

		assert.Equal(t, folio.PlatformCanva, platform)
		assert.Same(t, special, strategy)
	})

	t.Run("unparseable url falls back to generic", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewDefaultRegistry(generic, canva)

		platform, strategy := r.Select("")

		assert.Equal(t, folio.PlatformGeneric, platform)
		assert.Same(t, generic, strategy)
	})
}

func TestRegistry_Platforms(t *testing.T) {
	t.Parallel()

	t.Run("lists each platform once in registration order", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewDefaultRegistry(namedStrategy("g"), namedStrategy("c"))
		r.Register(folio.PlatformCanva, "canva.com", namedStrategy("c2"))

		assert.Equal(t, []folio.Platform{folio.PlatformCanva, folio.PlatformBehance, folio.PlatformDribbble}, r.Platforms())
	})

	t.Run("re-registering a domain replaces it", func(t *testing.T) {
		t.Parallel()

		first := namedStrategy("first")
		second := namedStrategy("second")
		r := scrape.NewRegistry(namedStrategy("g"))
		r.Register(folio.PlatformDribbble, "dribbble.com", first)
		r.Register(folio.PlatformDribbble, "Dribbble.com", second)

		_, strategy := r.Select("https://dribbble.com/jane")

		assert.Same(t, second, strategy)
		assert.Len(t, r.Platforms(), 1)
	})
}
