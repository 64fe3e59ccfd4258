package folio

import (
	"net/url"
	"regexp"
	"strings"
)

// MinPhoneDigits is the fewest digits a phone-shaped string must carry.
const MinPhoneDigits = 7

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?[0-9][0-9\-\s]{7,}`)

	// isoDateRe matches dates such as schema.org birthDate values, which
	// are phone-shaped.
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\b`)
)

// ScanEmails returns every email-shaped substring of text.
func ScanEmails(text string) []string {
	return emailRe.FindAllString(text, -1)
}

// ScanPhones returns every phone-shaped substring of text that is not a
// date.
func ScanPhones(text string) []string {
	var phones []string
	for _, m := range phoneRe.FindAllString(text, -1) {
		m = strings.TrimSpace(strings.TrimRight(m, "- \t\r\n"))
		digits := 0
		for i := 0; i < len(m); i++ {
			if '0' <= m[i] && m[i] <= '9' {
				digits++
			}
		}
		if digits >= MinPhoneDigits && !isoDateRe.MatchString(m) {
			phones = append(phones, m)
		}
	}
	return phones
}

// CollectContacts merges contact evidence from the visible text, the
// contact anchors and embedded JSON into one list, unique by type and
// value. Emails compare case-insensitively.
func CollectContacts(text string, anchors []Anchor, hints *JSONHints) []ContactInfo {
	var contacts []ContactInfo
	seen := make(map[string]bool)
	add := func(typ ContactType, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := string(typ) + " " + value
		if typ == ContactEmail {
			key = strings.ToLower(key)
		}
		if seen[key] {
			return
		}
		seen[key] = true
		contacts = append(contacts, ContactInfo{Type: typ, Value: value})
	}

	for _, email := range ScanEmails(text) {
		add(ContactEmail, email)
	}
	for _, a := range anchors {
		switch scheme, rest := splitScheme(a.Href); scheme {
		case "mailto":
			add(ContactEmail, unescapeOpaque(rest))
		case "tel":
			add(ContactPhone, unescapeOpaque(rest))
		}
	}
	if hints != nil {
		for _, email := range hints.Emails {
			add(ContactEmail, email)
		}
		for _, phone := range hints.Phones {
			add(ContactPhone, phone)
		}
	}
	for _, handle := range ScanAtHandles(text) {
		add(ContactHandle, handle)
	}
	return contacts
}

// splitScheme returns the lower-cased scheme of raw and the remainder
// after the colon.
func splitScheme(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if !hasScheme(raw) {
		return "", raw
	}
	i := strings.IndexByte(raw, ':')
	return strings.ToLower(raw[:i]), raw[i+1:]
}

// unescapeOpaque strips the query from a mailto/tel body and decodes it.
func unescapeOpaque(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if u, err := url.PathUnescape(s); err == nil {
		s = u
	}
	return strings.TrimPrefix(s, "//")
}
