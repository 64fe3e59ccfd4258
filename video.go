package folio

import "regexp"

var (
	// videoHostRe matches iframe sources served by a known video host.
	videoHostRe = regexp.MustCompile(`(?i)(?:youtube\.com|youtube-nocookie\.com|youtu\.be|vimeo\.com|player\.vimeo\.com|dailymotion\.com)`)

	// videoURLPatterns find literal video URLs in raw HTML, including ones
	// only referenced from scripts.
	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/watch\?v=[A-Za-z0-9_\-]+`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?youtube\.com/shorts/[A-Za-z0-9_\-]+`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?youtu\.be/[A-Za-z0-9_\-]+`),
		regexp.MustCompile(`(?i)https?://(?:www\.)?vimeo\.com/[0-9]+`),
	}
)

// IsVideoHost reports whether src points at a known video host.
func IsVideoHost(src string) bool {
	return videoHostRe.MatchString(src)
}

// ScanVideoURLs sweeps raw document bytes for video URLs and returns them
// as videos of type url, in pattern order.
func ScanVideoURLs(raw []byte) []Video {
	var videos []Video
	for _, re := range videoURLPatterns {
		for _, m := range re.FindAll(raw, -1) {
			videos = append(videos, Video{Type: VideoTypeURL, Src: string(m)})
		}
	}
	return videos
}

// DedupVideos removes videos whose (Type, Src) pair was seen before,
// keeping the first occurrence.
func DedupVideos(videos []Video) []Video {
	out := make([]Video, 0, len(videos))
	seen := make(map[Video]bool, len(videos))
	for _, v := range videos {
		key := Video{Type: v.Type, Src: v.Src}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
