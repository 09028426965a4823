package digest

import (
	"log/slog"

	"piazza-herald/internal/model"
)

const (
	tagInstructorNote = "instructor-note"
	tagStudent        = "student"

	headingAnswers          = "Answers"
	headingFollowup         = "Follow-up Post"
	headingInstructorAnswer = "Instructor Answer"
	headingStudentAnswer    = "Student Answer"

	noAnswersBody = "No answers yet :("
)

// Classify derives the digest grouping for a post. The pinned bucket takes
// priority; otherwise the first tag that is instructor-note or student
// wins. Posts with neither stay unclassified and out of the digest.
func Classify(p model.Post) model.DisplayKind {
	if p.Pinned() {
		return model.KindPinned
	}
	for _, tag := range p.Tags {
		switch tag {
		case tagInstructorNote:
			return model.KindInstructorNote
		case tagStudent:
			return model.KindStudent
		}
	}
	return model.KindUnclassified
}

// SelectAnswer picks the one contribution shown under a post:
//
//  1. no children: the "no answers yet" placeholder;
//  2. the first child is a followup: use the second child if it exists and
//     is a real answer, else fall back to the followup's subject line;
//  3. otherwise the first child is the answer, headed by its author role.
//
// MoreAnswers is set whenever more than one child exists, whether or not
// the extra children are answers.
func SelectAnswer(p model.Post) model.AnswerSelection {
	children := p.Children
	sel := model.AnswerSelection{
		MoreAnswers: len(children) > 1,
	}
	if sel.MoreAnswers {
		sel.Hidden = len(children) - 1
	}

	switch {
	case len(children) == 0:
		sel.Heading = headingAnswers
		sel.Body = noAnswersBody
	case children[0].Type == model.TypeFollowup:
		if len(children) > 1 && children[1].Type != model.TypeFollowup {
			sel.Heading = answerHeading(children[1].Type)
			sel.Body = childBody(children[1])
		} else {
			sel.Heading = headingFollowup
			sel.Body = children[0].Subject
		}
	default:
		sel.Heading = answerHeading(children[0].Type)
		sel.Body = childBody(children[0])
	}
	return sel
}

func answerHeading(childType string) string {
	if childType == model.TypeInstructorAnswer {
		return headingInstructorAnswer
	}
	return headingStudentAnswer
}

// postBody returns the latest revision's content. A missing or empty body
// is logged and comes back empty so Clean can substitute the placeholder.
func postBody(p model.Post) string {
	if len(p.History) == 0 || p.History[0].Content == "" {
		slog.Warn("digest: post has no usable body", "nr", p.Number, "type", p.Type, "subject", p.Subject())
		return ""
	}
	return p.History[0].Content
}

func childBody(c model.Child) string {
	if len(c.History) == 0 || c.History[0].Content == "" {
		slog.Warn("digest: child has no usable body", "id", c.ID, "type", c.Type)
		return ""
	}
	return c.History[0].Content
}
