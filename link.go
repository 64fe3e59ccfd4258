package folio

import (
	"net/url"
	"regexp"
	"strings"
)

// SocialPlatform is a social network recognized by the link classifier.
type SocialPlatform string

// Social platforms, in classification order.
const (
	SocialFacebook  SocialPlatform = "facebook"
	SocialInstagram SocialPlatform = "instagram"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialTwitter   SocialPlatform = "twitter"
	SocialYouTube   SocialPlatform = "youtube"
	SocialGitHub    SocialPlatform = "github"
	SocialBehance   SocialPlatform = "behance"
	SocialDribbble  SocialPlatform = "dribbble"
)

// SocialPlatforms lists every social platform in classification order.
var SocialPlatforms = []SocialPlatform{
	SocialFacebook,
	SocialInstagram,
	SocialLinkedIn,
	SocialTwitter,
	SocialYouTube,
	SocialGitHub,
	SocialBehance,
	SocialDribbble,
}

// socialDomains maps each platform to the hosts that identify it.
var socialDomains = map[SocialPlatform][]string{
	SocialFacebook:  {"facebook.com", "fb.com", "fb.me"},
	SocialInstagram: {"instagram.com", "instagr.am"},
	SocialLinkedIn:  {"linkedin.com", "linked.in"},
	SocialTwitter:   {"twitter.com", "t.co", "x.com"},
	SocialYouTube:   {"youtube.com", "youtu.be"},
	SocialGitHub:    {"github.com"},
	SocialBehance:   {"behance.net"},
	SocialDribbble:  {"dribbble.com"},
}

// LinkKind is the classification bucket of an anchor.
type LinkKind string

// Link kinds.
const (
	LinkSocial  LinkKind = "social"
	LinkContact LinkKind = "contact"
	LinkOther   LinkKind = "other"
)

// Anchor is a hyperlink as it appears in the document.
type Anchor struct {
	Href  string `json:"href"`
	Text  string `json:"text,omitempty"`
	Title string `json:"title,omitempty"`
}

// LinkSet holds classified anchors. Every bucket is unique by resolved URL
// and platforms without links are absent from Social.
type LinkSet struct {
	Social  map[SocialPlatform][]string `json:"social"`
	Contact []Anchor                    `json:"contact"`
	Other   []Anchor                    `json:"other"`
}

// Classification is the outcome of classifying one anchor.
type Classification struct {
	Kind     LinkKind
	Platform SocialPlatform
	URL      string
}

var (
	facebookProfileRe = regexp.MustCompile(`(?i)facebook\.com/(profile\.php\?id=\d+(?:&[A-Za-z0-9_=&%.\-]*)?|[A-Za-z0-9.\-_]+)`)
	youtubeChannelRe  = regexp.MustCompile(`(?i)youtube\.com/(?:channel/|user/|@)[A-Za-z0-9_\-]+`)

	contactHrefRe = regexp.MustCompile(`(?i)(?:mailto:|tel:|whatsapp:|wa\.me/|t\.me/|telegram\.me/|contact|email|phone|whatsapp|telegram)`)
	contactTextRe = regexp.MustCompile(`(?i)(?:contact|email|phone|whatsapp|telegram|message|reach out)`)
)

// facebookReserved holds first path segments that are never profiles.
var facebookReserved = map[string]bool{
	"sharer":      true,
	"sharer.php":  true,
	"share":       true,
	"share.php":   true,
	"dialog":      true,
	"plugins":     true,
	"tr":          true,
	"login":       true,
	"login.php":   true,
	"home.php":    true,
	"policies":    true,
	"help":        true,
	"profile.php": true,
}

// SocialPlatformOf returns the platform whose domain matches the host of
// raw. Facebook and YouTube URLs must also point at a profile or channel.
func SocialPlatformOf(raw string) (SocialPlatform, bool) {
	host := Hostname(raw)
	if host == "" {
		return "", false
	}
	for _, platform := range SocialPlatforms {
		for _, domain := range socialDomains[platform] {
			if host != domain && !strings.HasSuffix(host, "."+domain) {
				continue
			}
			if !validProfile(platform, raw) {
				return "", false
			}
			return platform, true
		}
	}
	return "", false
}

// validProfile applies the per-platform profile shape rules.
func validProfile(platform SocialPlatform, raw string) bool {
	switch platform {
	case SocialFacebook:
		m := facebookProfileRe.FindStringSubmatch(raw)
		if m == nil {
			return false
		}
		slug := strings.ToLower(m[1])
		if strings.HasPrefix(slug, "profile.php?id=") {
			return true
		}
		return !facebookReserved[slug]
	case SocialYouTube:
		return youtubeChannelRe.MatchString(raw)
	}
	return true
}

// ClassifyLink resolves href against base and places it in a bucket.
func ClassifyLink(base string, a Anchor) Classification {
	resolved := ResolveURL(base, a.Href)
	if platform, ok := SocialPlatformOf(resolved); ok {
		return Classification{Kind: LinkSocial, Platform: platform, URL: resolved}
	}
	if contactHrefRe.MatchString(resolved) || contactTextRe.MatchString(a.Text) {
		return Classification{Kind: LinkContact, URL: resolved}
	}
	return Classification{Kind: LinkOther, URL: resolved}
}

// ClassifyLinks classifies every anchor with a non-empty href.
func ClassifyLinks(base string, anchors []Anchor) LinkSet {
	set := LinkSet{Social: make(map[SocialPlatform][]string)}
	seen := make(map[LinkKind]map[string]bool)
	for _, kind := range []LinkKind{LinkSocial, LinkContact, LinkOther} {
		seen[kind] = make(map[string]bool)
	}

	for _, a := range anchors {
		if strings.TrimSpace(a.Href) == "" {
			continue
		}
		c := ClassifyLink(base, a)
		key := string(c.Platform) + " " + c.URL
		if seen[c.Kind][key] {
			continue
		}
		seen[c.Kind][key] = true

		switch c.Kind {
		case LinkSocial:
			set.Social[c.Platform] = append(set.Social[c.Platform], c.URL)
		case LinkContact:
			set.Contact = append(set.Contact, Anchor{Href: c.URL, Text: a.Text, Title: a.Title})
		default:
			set.Other = append(set.Other, Anchor{Href: c.URL, Text: a.Text, Title: a.Title})
		}
	}
	return set
}

// UsernameFromURL derives a handle from a profile URL: the profile.php id,
// or the first meaningful path segment without a leading "@".
func UsernameFromURL(raw string) string {
	if !hasScheme(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if strings.EqualFold(strings.Trim(u.Path, "/"), "profile.php") {
		return u.Query().Get("id")
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	first := segments[0]
	switch strings.ToLower(first) {
	case "in", "company", "channel", "user", "c", "pub":
		if len(segments) > 1 {
			first = segments[1]
		}
	}
	return strings.TrimPrefix(first, "@")
}
