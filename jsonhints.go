package folio

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buger/jsonparser"
)

// Limits on embedded JSON payloads. The walk revisits nested values once
// per level, so both size and depth are capped before it starts.
const (
	MaxJSONPayloadSize = 1 << 20
	MaxJSONDepth       = 64
)

// profileURLRe finds host/path substrings in free text. Candidates are
// confirmed with SocialPlatformOf.
var profileURLRe = regexp.MustCompile(`(?i)(?:https?://|//)?(?:[a-z0-9\-]+\.)+[a-z]{2,}/[^\s"'<>()\[\]{}]+`)

// JSONHints is the social and contact evidence found in embedded JSON
// script payloads.
type JSONHints struct {
	Social  map[SocialPlatform][]string
	Emails  []string
	Phones  []string
	Content []ContentBlock
}

// ScanJSONHints walks a JSON payload and collects every string that is a
// social profile URL, every email and phone shape, and the items of a
// top-level "content" array.
// Returns an error if the payload is not valid JSON, or is larger than
// MaxJSONPayloadSize or nested deeper than MaxJSONDepth.
func ScanJSONHints(payload []byte) (*JSONHints, error) {
	if len(payload) > MaxJSONPayloadSize {
		return nil, Errorf(EINVALID, "json payload of %d bytes exceeds %d", len(payload), MaxJSONPayloadSize)
	}
	if err := checkJSONDepth(payload, MaxJSONDepth); err != nil {
		return nil, err
	}

	h := &JSONHints{Social: make(map[SocialPlatform][]string)}

	value, dataType, _, err := jsonparser.Get(payload)
	if err != nil {
		return nil, fmt.Errorf("parse json payload: %w", err)
	}
	if err := h.walk(value, dataType); err != nil {
		return nil, fmt.Errorf("parse json payload: %w", err)
	}

	if dataType == jsonparser.Object {
		if _, t, _, err := jsonparser.Get(value, "content"); err == nil && t == jsonparser.Array {
			h.Content = contentItems(value)
		}
	}
	return h, nil
}

// Merge appends the evidence of other to h.
func (h *JSONHints) Merge(other *JSONHints) {
	if other == nil {
		return
	}
	if h.Social == nil {
		h.Social = make(map[SocialPlatform][]string)
	}
	for p, urls := range other.Social {
		h.Social[p] = append(h.Social[p], urls...)
	}
	h.Emails = append(h.Emails, other.Emails...)
	h.Phones = append(h.Phones, other.Phones...)
	h.Content = append(h.Content, other.Content...)
}

func (h *JSONHints) walk(value []byte, dataType jsonparser.ValueType) error {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		h.addString(s)
	case jsonparser.Object:
		return jsonparser.ObjectEach(value, func(_ []byte, v []byte, t jsonparser.ValueType, _ int) error {
			return h.walk(v, t)
		})
	case jsonparser.Array:
		var walkErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}
			walkErr = h.walk(v, t)
		})
		if err != nil {
			return err
		}
		return walkErr
	}
	return nil
}

func (h *JSONHints) addString(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if !strings.ContainsAny(s, " \t\r\n") {
		if platform, ok := SocialPlatformOf(s); ok {
			h.addSocial(platform, s)
			return
		}
	}

	// Profile URLs mentioned inside longer text are taken out before the
	// contact scan so their digits never read as phone numbers.
	rest := profileURLRe.ReplaceAllStringFunc(s, func(m string) string {
		u := strings.TrimRight(m, ".,;:!?")
		platform, ok := SocialPlatformOf(u)
		if !ok {
			return m
		}
		h.addSocial(platform, u)
		return " "
	})
	h.Emails = append(h.Emails, ScanEmails(rest)...)
	h.Phones = append(h.Phones, ScanPhones(rest)...)
}

func (h *JSONHints) addSocial(platform SocialPlatform, u string) {
	if !hasScheme(u) {
		u = "https://" + strings.TrimPrefix(u, "//")
	}
	h.Social[platform] = append(h.Social[platform], u)
}

// checkJSONDepth returns EINVALID when payload nests objects or arrays
// deeper than limit. Brackets inside strings are ignored.
func checkJSONDepth(payload []byte, limit int) error {
	depth := 0
	inString, escaped := false, false
	for _, c := range payload {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > limit {
				return Errorf(EINVALID, "json payload nested deeper than %d", limit)
			}
		case '}', ']':
			depth--
		}
	}
	return nil
}

// contentItems reads {"type", "text"} objects from the "content" array.
func contentItems(payload []byte) []ContentBlock {
	var blocks []ContentBlock
	_, _ = jsonparser.ArrayEach(payload, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
		if t != jsonparser.Object {
			return
		}
		text, err := jsonparser.GetString(v, "text")
		if err != nil || strings.TrimSpace(text) == "" {
			return
		}
		typ, _ := jsonparser.GetString(v, "type")
		if typ == "" {
			typ = "text"
		}
		blocks = append(blocks, ContentBlock{Type: typ, Text: strings.TrimSpace(text)})
	}, "content")
	return blocks
}
