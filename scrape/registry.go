package scrape

import (
	"strings"

	"github.com/fwojciec/folio"
)

var _ folio.StrategyRegistry = (*Registry)(nil)

// Registry maps domains to platform-specific extraction strategies.
// URLs whose host contains no registered domain get the fallback strategy
// and folio.PlatformGeneric.
type Registry struct {
	fallback folio.Strategy
	entries  []registration
}

type registration struct {
	platform folio.Platform
	domain   string
	strategy folio.Strategy
}

// NewRegistry creates a new Registry with the given fallback strategy.
func NewRegistry(fallback folio.Strategy) *Registry {
	return &Registry{fallback: fallback}
}

// NewDefaultRegistry returns a Registry with the built-in platforms:
// canva.site sites use canva, while behance.net and dribbble.com use the
// generic strategy under their own platform tag.
func NewDefaultRegistry(generic, canva folio.Strategy) *Registry {
	r := NewRegistry(generic)
	r.Register(folio.PlatformCanva, "canva.site", canva)
	r.Register(folio.PlatformBehance, "behance.net", generic)
	r.Register(folio.PlatformDribbble, "dribbble.com", generic)
	return r
}

// Register associates a domain with a platform and strategy.
// Registering the same domain again replaces the previous entry.
func (r *Registry) Register(platform folio.Platform, domain string, strategy folio.Strategy) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	for i, e := range r.entries {
		if e.domain == domain {
			r.entries[i] = registration{platform: platform, domain: domain, strategy: strategy}
			return
		}
	}
	r.entries = append(r.entries, registration{platform: platform, domain: domain, strategy: strategy})
}

// Select returns the platform and strategy for url. Among the registered
// domains contained in the host, the longest one wins; ties go to the
// earliest registration.
func (r *Registry) Select(url string) (folio.Platform, folio.Strategy) {
	host := folio.Hostname(url)
	if host == "" {
		return folio.PlatformGeneric, r.fallback
	}

	var best *registration
	for i := range r.entries {
		e := &r.entries[i]
		if !strings.Contains(host, e.domain) {
			continue
		}
		if best == nil || len(e.domain) > len(best.domain) {
			best = e
		}
	}
	if best == nil {
		return folio.PlatformGeneric, r.fallback
	}
	return best.platform, best.strategy
}

// Platforms returns all registered platforms in registration order,
// without duplicates.
func (r *Registry) Platforms() []folio.Platform {
	seen := make(map[folio.Platform]bool, len(r.entries))
	platforms := make([]folio.Platform, 0, len(r.entries))
	for _, e := range r.entries {
		if seen[e.platform] {
			continue
		}
		seen[e.platform] = true
		platforms = append(platforms, e.platform)
	}
	return platforms
}
