package digest

import (
	"fmt"
	"strings"
	"time"

	"piazza-herald/internal/model"
)

const noneForToday = "None for today!"

// Builder renders digests, pinned listings, and post detail views for one
// course. All output is plain text except PostDetail, which returns a
// structured view for the transport to lay out.
type Builder struct {
	course  string
	postURL string // post URL prefix; the post number is appended

	now func() time.Time
}

// NewBuilder creates a builder for a course. baseURL is the Piazza origin
// (e.g. "https://piazza.com") and networkID the class forum identifier.
func NewBuilder(course, baseURL, networkID string) *Builder {
	return &Builder{
		course:  course,
		postURL: fmt.Sprintf("%s/class/%s?cid=", strings.TrimRight(baseURL, "/"), networkID),
		now:     time.Now,
	}
}

// PostURL returns the public URL of a post number.
func (b *Builder) PostURL(nr int) string {
	return fmt.Sprintf("%s%d", b.postURL, nr)
}

func (b *Builder) entry(p model.Post) model.DigestEntry {
	return model.DigestEntry{
		Number:  p.Number,
		Subject: p.Subject(),
		URL:     b.PostURL(p.Number),
	}
}

// DailyDigest composes the daily update message. Instructor notes are
// always listed in full; student posts are capped at displayCap with a
// trailer counting the overflow. Pinned and unclassified posts are not
// part of the daily grouping.
func (b *Builder) DailyDigest(posts []model.Post, displayCap int) string {
	var instructor, student []model.DigestEntry
	for _, p := range posts {
		switch Classify(p) {
		case model.KindInstructorNote:
			instructor = append(instructor, b.entry(p))
		case model.KindStudent:
			student = append(student, b.entry(p))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s's posts for %s**\n", b.course, b.now().UTC().Format("2006-01-02"))
	if displayCap > 0 && len(student) > displayCap {
		fmt.Fprintf(&sb, "Showing first %d posts, %d more on Piazza\n", displayCap, len(student)-displayCap)
		student = student[:displayCap]
	}
	sb.WriteString("Instructor's Notes:\n")
	writeEntries(&sb, instructor)
	sb.WriteString("\nDiscussion posts:\n")
	writeEntries(&sb, student)
	return sb.String()
}

// PinnedListing renders one line per pinned post.
func (b *Builder) PinnedListing(posts []model.Post) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pinned posts for %s:\n", b.course)
	for _, p := range posts {
		writeEntry(&sb, b.entry(p))
	}
	return sb.String()
}

// PostDetail assembles the full view of one post: sanitized body, the
// selected answer, a hidden-contributions note, and a tag summary footer.
func (b *Builder) PostDetail(p model.Post) model.PostView {
	view := model.PostView{
		Title:       p.Subject(),
		URL:         b.PostURL(p.Number),
		Description: fmt.Sprintf("@%d", p.Number),
		Footer:      "tags: " + tagSummary(p.Tags),
	}

	bodyName := "Question"
	if p.Type == model.TypeNote {
		bodyName = "Note"
	}
	view.Fields = append(view.Fields, model.Field{Name: bodyName, Value: Clean(postBody(p))})

	sel := SelectAnswer(p)
	view.Fields = append(view.Fields, model.Field{Name: sel.Heading, Value: Clean(sel.Body)})
	if sel.MoreAnswers {
		view.Fields = append(view.Fields, model.Field{
			Name:  fmt.Sprintf("%d more contribution(s) hidden", sel.Hidden),
			Value: "Click the title above to access the rest of the post.",
		})
	}
	return view
}

func tagSummary(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	return strings.Join(tags, ", ")
}

func writeEntries(sb *strings.Builder, entries []model.DigestEntry) {
	if len(entries) == 0 {
		sb.WriteString(noneForToday + "\n")
		return
	}
	for _, e := range entries {
		writeEntry(sb, e)
	}
}

func writeEntry(sb *strings.Builder, e model.DigestEntry) {
	fmt.Fprintf(sb, "@%d: %s <%s>\n", e.Number, e.Subject, e.URL)
}
