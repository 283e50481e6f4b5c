// Package guide maps an analysis result onto the seven study guide sections.
// Build is pure; interactive state lives in a View created per result.
package guide

import (
	"studyguide/internal/analysis"
	"studyguide/internal/disclosure"
	"studyguide/internal/quiz"
)

// SectionKey identifies a section. Keys are stable across results.
type SectionKey string

const (
	KeySummary     SectionKey = "summary"
	KeyComparative SectionKey = "comparative"
	KeyTakeaways   SectionKey = "takeaways"
	KeyQuiz        SectionKey = "quiz"
	KeyAnswers     SectionKey = "answers"
	KeyDifficulty  SectionKey = "difficulty"
	KeyNotes       SectionKey = "notes"
)

// List labels.
const (
	LabelVideo1Better = "Video 1 Explains Better"
	LabelVideo2Better = "Video 2 Explains Better"
	LabelAgreement    = "Points of Agreement"
	LabelEasy         = "Easy"
	LabelMedium       = "Medium"
	LabelHard         = "Hard"
)

// Section is one collapsible block of the guide.
type Section struct {
	Key         SectionKey
	Title       string
	DefaultOpen bool
	Body        Body
}

// Body is implemented by the section body types below.
type Body interface {
	isBody()
}

// SummaryBody lists summary entries; content and subtopics are optional.
type SummaryBody struct {
	Entries []analysis.SummaryItem
}

// List is a flat list with an optional label.
type List struct {
	Label string
	Items []string
}

// ListsBody is one or more independent lists.
type ListsBody struct {
	Lists []List
}

// QuizEntry is a question together with its state key.
type QuizEntry struct {
	Key      string
	Question analysis.QuizQuestion
}

// QuizBody holds the interactive questions in input order.
type QuizBody struct {
	Questions []QuizEntry
}

// AnswerPair is one read-only answer key row.
type AnswerPair struct {
	Key      string
	Question string
	Answer   string
}

// AnswerKeyBody pairs every question with its literal answer.
type AnswerKeyBody struct {
	Pairs []AnswerPair
}

// NotesBody is rendered verbatim.
type NotesBody struct {
	Text string
}

func (SummaryBody) isBody()   {}
func (ListsBody) isBody()     {}
func (QuizBody) isBody()      {}
func (AnswerKeyBody) isBody() {}
func (NotesBody) isBody()     {}

// Guide is the full ordered set of sections for one result.
type Guide struct {
	Sections []Section
}

// Empty reports whether there is nothing to show.
func (g Guide) Empty() bool { return len(g.Sections) == 0 }

// Section returns the section for key.
func (g Guide) Section(key SectionKey) (Section, bool) {
	for _, s := range g.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Build maps r onto the guide sections. A nil result yields an empty guide;
// missing fields yield empty bodies.
func Build(r *analysis.Result) Guide {
	if r == nil {
		return Guide{}
	}
	return Guide{Sections: []Section{
		{Key: KeySummary, Title: "Combined Summary", DefaultOpen: true, Body: summaryBody(r.Summary)},
		{Key: KeyComparative, Title: "Comparative Insights", Body: ListsBody{Lists: []List{
			{Label: LabelVideo1Better, Items: r.ComparativeInsights.Video1Better},
			{Label: LabelVideo2Better, Items: r.ComparativeInsights.Video2Better},
			{Label: LabelAgreement, Items: r.ComparativeInsights.Agreement},
		}}},
		{Key: KeyTakeaways, Title: "Key Takeaways", Body: ListsBody{Lists: []List{{Items: r.KeyTakeaways}}}},
		{Key: KeyQuiz, Title: "Knowledge Check", Body: quizBody(r.Quiz)},
		{Key: KeyAnswers, Title: "Answer Key", Body: answerKeyBody(r.Quiz)},
		{Key: KeyDifficulty, Title: "Difficulty-Based Questions", Body: ListsBody{Lists: []List{
			{Label: LabelEasy, Items: r.DifficultyQuestions.Easy},
			{Label: LabelMedium, Items: r.DifficultyQuestions.Medium},
			{Label: LabelHard, Items: r.DifficultyQuestions.Hard},
		}}},
		{Key: KeyNotes, Title: "Final Learning Notes", Body: NotesBody{Text: r.Notes}},
	}}
}

func summaryBody(items []analysis.SummaryItem) SummaryBody {
	return SummaryBody{Entries: items}
}

func quizBody(qs []analysis.QuizQuestion) QuizBody {
	keys := quiz.Keys(qs)
	out := QuizBody{Questions: make([]QuizEntry, len(qs))}
	for i, q := range qs {
		out.Questions[i] = QuizEntry{Key: keys[i], Question: q}
	}
	return out
}

func answerKeyBody(qs []analysis.QuizQuestion) AnswerKeyBody {
	keys := quiz.Keys(qs)
	out := AnswerKeyBody{Pairs: make([]AnswerPair, len(qs))}
	for i, q := range qs {
		out.Pairs[i] = AnswerPair{Key: keys[i], Question: q.Question, Answer: q.Answer}
	}
	return out
}

// View is the interactive state of one displayed guide. It is discarded
// whenever a new result replaces the guide.
type View struct {
	// Sections holds disclosure state per SectionKey. Nil means every section is open.
	Sections *disclosure.Set
	// Quiz holds per-question state. Nil means every question is unrevealed.
	Quiz *quiz.Board
}

// NewView creates fresh state for g with each section at its default.
func NewView(g Guide) View {
	set := disclosure.NewSet()
	var board *quiz.Board
	for _, s := range g.Sections {
		set.Add(string(s.Key), s.DefaultOpen)
		if qb, ok := s.Body.(QuizBody); ok {
			qs := make([]analysis.QuizQuestion, len(qb.Questions))
			for i, e := range qb.Questions {
				qs[i] = e.Question
			}
			board = quiz.NewBoard(qs)
		}
	}
	if board == nil {
		board = quiz.NewBoard(nil)
	}
	return View{Sections: set, Quiz: board}
}

// IsOpen reports whether the section is expanded.
func (v View) IsOpen(key SectionKey) bool {
	if v.Sections == nil {
		return true
	}
	return v.Sections.IsOpen(string(key))
}

// Item returns the state for a question key.
func (v View) Item(key string) (*quiz.Item, bool) {
	if v.Quiz == nil {
		return nil, false
	}
	return v.Quiz.Get(key)
}
