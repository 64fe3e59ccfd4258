package folio

import (
	"context"
	"time"
)

// Platform identifies the site family a record was scraped from.
type Platform string

// Known platforms. Unknown sites are PlatformGeneric.
const (
	PlatformGeneric  Platform = "generic"
	PlatformCanva    Platform = "canva"
	PlatformBehance  Platform = "behance"
	PlatformDribbble Platform = "dribbble"
)

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformGeneric, PlatformCanva, PlatformBehance, PlatformDribbble:
		return true
	}
	return false
}

// Status is the lifecycle state of a ScrapeRecord.
type Status string

// Record statuses. A scrape moves pending → completed or pending → failed.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// ScrapeRecord is the canonical stored result for one source URL.
// It owns its content detail and child collections; re-scraping replaces
// them wholesale.
type ScrapeRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Platform  Platform  `json:"platform"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content      *ContentDetail `json:"contentDetail,omitempty"`
	Images       []Image        `json:"images"`
	Videos       []Video        `json:"videos"`
	SocialLinks  []SocialLink   `json:"socialLinks"`
	ContactInfos []ContactInfo  `json:"contactInfos"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ScrapeRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Platform != "" && !r.Platform.Valid() {
		return Errorf(EINVALID, "unknown platform %q", r.Platform)
	}
	if r.Status != "" && !r.Status.Valid() {
		return Errorf(EINVALID, "unknown status %q", r.Status)
	}
	return nil
}

// ContentDetail holds the textual extraction of a page.
type ContentDetail struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Descriptions []string          `json:"descriptions,omitempty"`
	Metadata     map[string]string `json:"metadata"`
	Blocks       []ContentBlock    `json:"blocks,omitempty"`
	Sections     []Section         `json:"sections,omitempty"`

	// Article is the page's main content rendered as Markdown, when available.
	Article string `json:"article,omitempty"`

	// Hash fingerprints title, description and blocks so callers can
	// detect unchanged pages across scrapes.
	Hash string `json:"hash,omitempty"`

	// Error is set when the scrape failed.
	Error string `json:"error,omitempty"`
}

// ContentBlock is one unit of the flat, document-ordered content sequence.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// Section pairs a heading with the text of its enclosing section.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// VideoType describes how a video was discovered.
type VideoType string

// Video types.
const (
	VideoTypeVideo  VideoType = "video"
	VideoTypeIframe VideoType = "iframe"
	VideoTypeURL    VideoType = "url"
)

// Video is an embedded or referenced video. Videos are unique by (Type, Src).
type Video struct {
	Type            VideoType `json:"type"`
	Src             string    `json:"src"`
	Poster          string    `json:"poster,omitempty"`
	AllowFullscreen bool      `json:"allowFullscreen,omitempty"`
	Sandbox         string    `json:"sandbox,omitempty"`
}

// Image is an image element with an absolute source URL.
type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

// SocialLink is a reference to a profile on a social platform, or a
// contact-intent link found on the page.
type SocialLink struct {
	Platform SocialPlatform `json:"platform,omitempty"`
	Username string         `json:"username"`
	URL      string         `json:"url"`
	Kind     LinkKind       `json:"type"`
}

// ContactType describes the shape of a ContactInfo value.
type ContactType string

// Contact types.
const (
	ContactEmail  ContactType = "email"
	ContactPhone  ContactType = "phone"
	ContactHandle ContactType = "handle"
)

// ContactInfo is a single email address, phone number or handle.
type ContactInfo struct {
	Type  ContactType `json:"type"`
	Value string      `json:"value"`
}

// ChangeSet is the persistence-ready output of one scrape. It replaces
// every child of a record in a single operation.
type ChangeSet struct {
	Content      *ContentDetail
	Images       []Image
	Videos       []Video
	SocialLinks  []SocialLink
	ContactInfos []ContactInfo
}

// RecordService represents a service for managing scrape records.
type RecordService interface {
	// FindOrCreateRecord returns the record for url, creating it if needed.
	// An existing record has its platform updated.
	FindOrCreateRecord(ctx context.Context, url string, platform Platform) (*ScrapeRecord, error)

	// ReplaceChildren deletes every child of the record and writes the
	// change set in its place.
	// Returns ENOTFOUND if record does not exist.
	ReplaceChildren(ctx context.Context, id string, cs *ChangeSet) error

	// SetStatus updates the record status.
	// Returns ENOTFOUND if record does not exist.
	SetStatus(ctx context.Context, id string, status Status) error

	// FindRecordByID retrieves a record and its children.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*ScrapeRecord, error)

	// FindRecordByURL retrieves a record and its children by source URL.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByURL(ctx context.Context, url string) (*ScrapeRecord, error)

	// FindRecords retrieves records matching the filter with their content
	// detail but without child collections.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*ScrapeRecord, error)

	// DeleteRecord permanently removes a record and all of its children.
	// Returns ENOTFOUND if record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Platform *Platform `json:"platform"`
	Status   *Status   `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Scraper scrapes a URL into a persisted record.
type Scraper interface {
	// Scrape fetches and extracts url and stores the result.
	// On failure the record is still persisted with StatusFailed and the
	// error is returned, so callers must not assume no state changed.
	Scrape(ctx context.Context, url string) (*ScrapeRecord, error)
}
