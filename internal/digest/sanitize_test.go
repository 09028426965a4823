package digest

import (
	"strings"
	"testing"
)

func TestCleanEmptyBodyGetsPlaceholder(t *testing.T) {
	got := Clean("")
	if got != mediaPlaceholder {
		t.Fatalf("Clean(\"\") = %q, want %q", got, mediaPlaceholder)
	}
}

func TestCleanAllMarkupGetsPlaceholder(t *testing.T) {
	got := Clean("<md><p></p></md>")
	if got != mediaPlaceholder {
		t.Fatalf("Clean = %q, want %q", got, mediaPlaceholder)
	}
}

func TestCleanStripsTagsAndUnescapes(t *testing.T) {
	got := Clean("<p>Hello &amp; welcome to <b>class</b></p>")
	want := "Hello & welcome to class"
	if got != want {
		t.Fatalf("Clean = %q, want %q", got, want)
	}
}

func TestCleanShortBodyUntouched(t *testing.T) {
	body := "plain text, exactly as posted"
	if got := Clean(body); got != body {
		t.Fatalf("Clean = %q, want unchanged %q", got, body)
	}
}

func TestCleanTruncatesLongBodies(t *testing.T) {
	body := strings.Repeat("a", 2000)
	got := Clean(body)
	if !strings.HasSuffix(got, readMoreMarker) {
		t.Fatalf("missing read-more marker, got tail %q", got[len(got)-40:])
	}
	maxLen := maxBodyLen + len([]rune(readMoreMarker))
	if n := len([]rune(got)); n > maxLen {
		t.Fatalf("output length %d exceeds %d", n, maxLen)
	}
	if want := strings.Repeat("a", truncateAt) + readMoreMarker; got != want {
		t.Fatalf("unexpected truncation result (len %d)", len(got))
	}
}

func TestCleanBoundaryBodyNotTruncated(t *testing.T) {
	body := strings.Repeat("a", maxBodyLen)
	if got := Clean(body); got != body {
		t.Fatalf("body of exactly %d chars was modified", maxBodyLen)
	}
}

// A body cut at 1000 characters can land inside a tag, producing a fragment
// with no closing '>'. The fragment must not leak into the output.
func TestCleanTruncationMidTag(t *testing.T) {
	body := strings.Repeat("a", 990) + `<a href="` + strings.Repeat("b", 200) + `">link</a>` + strings.Repeat("c", 100)
	got := Clean(body)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("tag fragment leaked into output: %q", got)
	}
	if want := strings.Repeat("a", 990) + readMoreMarker; got != want {
		t.Fatalf("Clean = %q, want %q", got, want)
	}
}

func TestCleanNeverLeavesTagPattern(t *testing.T) {
	bodies := []string{
		"<p>x</p>",
		"a <br/> b",
		strings.Repeat("<i>y</i>", 400),
		"unclosed < bracket stays",
	}
	for _, body := range bodies {
		if got := Clean(body); tagPattern.MatchString(got) {
			t.Errorf("Clean(%q) left a tag: %q", body, got)
		}
	}
}
