package model

// Post types as reported by Piazza's content API.
const (
	TypeQuestion         = "question"
	TypeNote             = "note"
	TypeFollowup         = "followup"
	TypeInstructorAnswer = "i_answer"
	TypeStudentAnswer    = "s_answer"
)

// BucketPinned marks posts promoted to the top of the class feed.
const BucketPinned = "Pinned"

// Revision is one entry of a post's edit history. Index 0 is the most
// recent revision and the only one this service reads.
type Revision struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// Child is an answer or followup attached to a post. Followups carry their
// text in Subject; answers carry it in History like a top-level post.
type Child struct {
	ID      string     `json:"id"`
	Type    string     `json:"type"`
	Subject string     `json:"subject"`
	History []Revision `json:"history"`
}

// Post is a top-level question or note fetched from a Piazza network.
type Post struct {
	ID         string     `json:"id"`
	Number     int        `json:"nr"`
	Type       string     `json:"type"`
	Created    string     `json:"created"` // ISO8601; only the date prefix is significant
	Tags       []string   `json:"tags"`
	BucketName string     `json:"bucket_name"`
	History    []Revision `json:"history"`
	Children   []Child    `json:"children"`
}

// Subject returns the most recent revision's subject, or "" when the
// history is missing.
func (p Post) Subject() string {
	if len(p.History) == 0 {
		return ""
	}
	return p.History[0].Subject
}

// Pinned reports whether the post sits in the pinned bucket.
func (p Post) Pinned() bool {
	return p.BucketName == BucketPinned
}

// DisplayKind is the digest grouping derived from a post's tags and bucket.
type DisplayKind int

const (
	KindUnclassified DisplayKind = iota
	KindInstructorNote
	KindStudent
	KindPinned
)

func (k DisplayKind) String() string {
	switch k {
	case KindInstructorNote:
		return "instructor-note"
	case KindStudent:
		return "student"
	case KindPinned:
		return "pinned"
	default:
		return "unclassified"
	}
}

// AnswerSelection is the one answer (or followup fallback) chosen for
// display, plus whether further contributions stay hidden.
type AnswerSelection struct {
	Heading     string
	Body        string // raw; sanitize before display
	MoreAnswers bool
	Hidden      int // contributions beyond the one shown
}

// DigestEntry is a single line of the daily digest.
type DigestEntry struct {
	Number  int
	Subject string
	URL     string
}

// Field is one name/value section of a rendered post view.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// PostView is a fully rendered post detail ready for display, either as a
// rich message or as plain text.
type PostView struct {
	Title       string
	URL         string
	Description string
	Fields      []Field
	Footer      string
}
