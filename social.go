package folio

import "strings"

// Channels tagged on contact links, which belong to no social platform.
const (
	ChannelEmail    SocialPlatform = "email"
	ChannelPhone    SocialPlatform = "phone"
	ChannelWhatsApp SocialPlatform = "whatsapp"
	ChannelTelegram SocialPlatform = "telegram"
	ChannelWeb      SocialPlatform = "web"
)

// MergeSocial unions the social evidence of classified anchors, embedded
// JSON and free-text handles into one list. Profiles are unique per
// platform and ordered by SocialPlatforms, then by first appearance.
// Contact anchors follow as links of kind contact.
func MergeSocial(links LinkSet, hints *JSONHints, handles map[SocialPlatform][]string) []SocialLink {
	var out []SocialLink
	for _, p := range SocialPlatforms {
		seen := make(map[string]bool)
		sources := [][]string{links.Social[p], handles[p]}
		if hints != nil {
			sources = [][]string{links.Social[p], hints.Social[p], handles[p]}
		}
		for _, urls := range sources {
			for _, u := range urls {
				if u == "" || seen[u] {
					continue
				}
				seen[u] = true
				out = append(out, SocialLink{
					Platform: p,
					Username: UsernameFromURL(u),
					URL:      u,
					Kind:     LinkSocial,
				})
			}
		}
	}

	seen := make(map[string]bool)
	for _, a := range links.Contact {
		if seen[a.Href] {
			continue
		}
		seen[a.Href] = true
		out = append(out, SocialLink{
			Platform: contactChannel(a.Href),
			Username: strings.TrimSpace(a.Text),
			URL:      a.Href,
			Kind:     LinkContact,
		})
	}
	return out
}

// contactChannel names the medium of a contact link.
func contactChannel(href string) SocialPlatform {
	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(lower, "mailto:"):
		return ChannelEmail
	case strings.HasPrefix(lower, "tel:"):
		return ChannelPhone
	case strings.HasPrefix(lower, "whatsapp:") || strings.Contains(lower, "wa.me/") || strings.Contains(lower, "whatsapp.com"):
		return ChannelWhatsApp
	case strings.Contains(lower, "t.me/") || strings.Contains(lower, "telegram.me"):
		return ChannelTelegram
	}
	return ChannelWeb
}
