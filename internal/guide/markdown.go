package guide

import (
	"fmt"
	"strings"

	"studyguide/internal/analysis"
	"studyguide/internal/quiz"
)

// Option markers by class.
var classMarkers = map[quiz.OptionClass]string{
	quiz.ClassNeutral:           "○",
	quiz.ClassSelected:          "●",
	quiz.ClassCorrect:           "✔",
	quiz.ClassIncorrectSelected: "✘",
	quiz.ClassDimmed:            "·",
}

// Marker returns the glyph for an option class.
func Marker(c quiz.OptionClass) string {
	if m, ok := classMarkers[c]; ok {
		return m
	}
	return "?"
}

// Disclosure glyphs.
const (
	GlyphOpen   = "▾"
	GlyphClosed = "▸"
)

// RevealPrompt is shown in place of a hidden free-text answer.
const RevealPrompt = "Tap to reveal answer"

// Markdown renders g as markdown under the given view. Closed sections
// render only their heading. Output is deterministic.
func Markdown(g Guide, v View) string {
	var b strings.Builder
	for i, s := range g.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		open := v.IsOpen(s.Key)
		glyph := GlyphClosed
		if open {
			glyph = GlyphOpen
		}
		fmt.Fprintf(&b, "## %s %s\n", glyph, s.Title)
		if !open {
			continue
		}
		b.WriteString("\n")
		writeBody(&b, s.Body, v)
	}
	return b.String()
}

func writeBody(b *strings.Builder, body Body, v View) {
	switch body := body.(type) {
	case SummaryBody:
		writeSummary(b, body)
	case ListsBody:
		writeLists(b, body)
	case QuizBody:
		writeQuiz(b, body, v)
	case AnswerKeyBody:
		for i, p := range body.Pairs {
			fmt.Fprintf(b, "%d. %s\n   **Answer:** %s\n", i+1, p.Question, p.Answer)
		}
	case NotesBody:
		if body.Text != "" {
			b.WriteString(body.Text)
			if !strings.HasSuffix(body.Text, "\n") {
				b.WriteString("\n")
			}
		}
	}
}

func writeSummary(b *strings.Builder, body SummaryBody) {
	for i, e := range body.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "### %d. %s\n", i+1, e.Title)
		if e.Content != "" {
			fmt.Fprintf(b, "\n%s\n", e.Content)
		}
		for _, st := range e.Subtopics {
			fmt.Fprintf(b, "\n**%s**\n", st.Heading)
			for _, p := range st.Points {
				fmt.Fprintf(b, "- %s\n", p)
			}
		}
	}
}

func writeLists(b *strings.Builder, body ListsBody) {
	for i, l := range body.Lists {
		if i > 0 {
			b.WriteString("\n")
		}
		if l.Label != "" {
			fmt.Fprintf(b, "**%s**\n", l.Label)
		}
		for _, item := range l.Items {
			fmt.Fprintf(b, "- %s\n", item)
		}
	}
}

func writeQuiz(b *strings.Builder, body QuizBody, v View) {
	for i, e := range body.Questions {
		if i > 0 {
			b.WriteString("\n")
		}
		q := e.Question
		fmt.Fprintf(b, "**Q%d.** %s _(%s)_\n", i+1, q.Question, TypeLabel(q.Type))

		var state quiz.State
		if it, ok := v.Item(e.Key); ok {
			state = it.State()
		}
		if !q.Type.HasOptions() {
			if state.Revealed {
				fmt.Fprintf(b, "> %s\n", q.Answer)
			} else {
				fmt.Fprintf(b, "> _%s_\n", RevealPrompt)
			}
			continue
		}
		for _, o := range q.Options {
			fmt.Fprintf(b, "- %s %s\n", Marker(quiz.Classify(o, q.Answer, state)), o)
		}
	}
}

// TypeLabel names a question type for display.
func TypeLabel(t analysis.QuestionType) string {
	switch t {
	case analysis.QuestionMCQ:
		return "multiple choice"
	case analysis.QuestionTF:
		return "true/false"
	default:
		return "short answer"
	}
}
