package folio

import (
	"regexp"
	"strings"
)

// Maximum handle lengths accepted by the free-text scanner.
const (
	MaxTwitterHandleLen   = 15
	MaxInstagramHandleLen = 30
)

// emailProviders are names that show up after "@" in loosely written email
// addresses and are never social handles.
var emailProviders = map[string]bool{
	"gmail":          true,
	"gmail.com":      true,
	"yahoo":          true,
	"yahoo.com":      true,
	"hotmail":        true,
	"hotmail.com":    true,
	"outlook":        true,
	"outlook.com":    true,
	"protonmail":     true,
	"protonmail.com": true,
}

// pathHandlePatterns find profile URLs written as plain text.
var pathHandlePatterns = []struct {
	platform SocialPlatform
	re       *regexp.Regexp
}{
	{SocialFacebook, regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?facebook\.com/(?:profile\.php\?id=\d+|[A-Za-z0-9.]+)`)},
	{SocialLinkedIn, regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[A-Za-z0-9\-]+`)},
	{SocialYouTube, regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/(?:channel/|user/|@)[A-Za-z0-9_\-]+`)},
	{SocialGitHub, regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_\-]+`)},
	{SocialBehance, regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?behance\.net/[A-Za-z0-9_\-]+`)},
	{SocialDribbble, regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?dribbble\.com/[A-Za-z0-9_\-]+`)},
}

// ScanHandles finds social profiles mentioned in free text and returns
// their URLs per platform. "@name" mentions count for Twitter and
// Instagram; the other platforms are recognized by URL path.
func ScanHandles(text string) map[SocialPlatform][]string {
	found := make(map[SocialPlatform][]string)
	add := func(p SocialPlatform, u string) {
		for _, existing := range found[p] {
			if existing == u {
				return
			}
		}
		found[p] = append(found[p], u)
	}

	for _, m := range atMentions(text) {
		if h := leadingRun(m, isTwitterHandleByte); h != "" && len(h) <= MaxTwitterHandleLen && !emailProviders[strings.ToLower(h)] {
			add(SocialTwitter, "https://twitter.com/"+h)
		}
		if h := strings.TrimRight(leadingRun(m, isInstagramHandleByte), "."); h != "" && len(h) <= MaxInstagramHandleLen && !emailProviders[strings.ToLower(h)] {
			add(SocialInstagram, "https://instagram.com/"+h)
		}
	}

	for _, p := range pathHandlePatterns {
		for _, m := range p.re.FindAllString(text, -1) {
			u := strings.TrimRight(m, ".")
			if !hasScheme(u) {
				u = "https://" + u
			}
			if platform, ok := SocialPlatformOf(u); !ok || platform != p.platform {
				continue
			}
			add(p.platform, u)
		}
	}
	return found
}

// ScanAtHandles returns the distinct "@name" mentions in text, excluding
// email addresses and email provider names.
func ScanAtHandles(text string) []string {
	var handles []string
	seen := make(map[string]bool)
	for _, m := range atMentions(text) {
		h := strings.TrimRight(leadingRun(m, isInstagramHandleByte), ".")
		if h == "" || emailProviders[strings.ToLower(h)] || seen[h] {
			continue
		}
		seen[h] = true
		handles = append(handles, "@"+h)
	}
	return handles
}

// atMentions returns the text following every "@" that starts a mention,
// that is, one not preceded by a word character or a dot. Go's regexp has
// no lookbehind, so the preceding byte is checked by hand.
func atMentions(text string) []string {
	var out []string
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		if i > 0 && (isTwitterHandleByte(text[i-1]) || text[i-1] == '.') {
			continue
		}
		out = append(out, text[i+1:])
	}
	return out
}

// leadingRun returns the longest prefix of s made of bytes accepted by ok.
func leadingRun(s string, ok func(byte) bool) string {
	i := 0
	for i < len(s) && ok(s[i]) {
		i++
	}
	return s[:i]
}

func isTwitterHandleByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}

func isInstagramHandleByte(c byte) bool {
	return isTwitterHandleByte(c) || c == '.'
}
