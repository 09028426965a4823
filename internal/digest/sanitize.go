package digest

import (
	"html"
	"regexp"
)

const (
	// maxBodyLen is the longest body displayed without truncation.
	maxBodyLen = 1024
	// truncateAt is where over-long bodies are cut.
	truncateAt = 1000

	readMoreMarker = "...\n\n *(Read more)*"

	// mediaPlaceholder stands in for bodies that are empty once markup is
	// stripped, which on Piazza means an image or video attachment.
	mediaPlaceholder = "An image or video was posted in response."
)

var (
	tagPattern = regexp.MustCompile(`<.*?>`)
	// openTagPattern catches a tag cut in half by truncation, which has no
	// closing '>' for tagPattern to find.
	openTagPattern = regexp.MustCompile(`<[^>]*$`)
)

// Clean normalizes a raw post body into chat-safe text: bodies longer than
// 1024 characters are cut at 1000 and get a read-more marker, markup tags
// are stripped, HTML entities are unescaped, and an empty result becomes
// the media placeholder. Truncation happens before stripping, so the strip
// must also remove the fragment of a tag the cut landed inside.
func Clean(raw string) string {
	s := raw
	truncated := false
	if runes := []rune(s); len(runes) > maxBodyLen {
		s = string(runes[:truncateAt])
		truncated = true
	}
	s = tagPattern.ReplaceAllString(s, "")
	if truncated {
		s = openTagPattern.ReplaceAllString(s, "")
	}
	s = html.UnescapeString(s)
	if truncated {
		s += readMoreMarker
	}
	if s == "" {
		return mediaPlaceholder
	}
	return s
}
