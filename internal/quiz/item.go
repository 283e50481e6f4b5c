package quiz

import "studyguide/internal/analysis"

// Item is the state machine for one quiz question: hidden -> revealed, with
// a selection that can change only while hidden.
type Item struct {
	key      string
	question analysis.QuizQuestion
	state    State
}

// NewItem wraps q under the given state key.
func NewItem(key string, q analysis.QuizQuestion) *Item {
	return &Item{key: key, question: q}
}

// Key is the unique state key of the question.
func (it *Item) Key() string { return it.key }

// Question returns the wrapped question.
func (it *Item) Question() analysis.QuizQuestion { return it.question }

// State returns a copy of the current state.
func (it *Item) State() State { return it.state }

// Revealed reports whether the answer has been revealed.
func (it *Item) Revealed() bool { return it.state.Revealed }

// Select records option as the chosen answer. It returns false, changing
// nothing, after reveal, for questions without options, or for an option
// the question does not list.
func (it *Item) Select(option string) bool {
	if it.state.Revealed || !it.question.Type.HasOptions() {
		return false
	}
	listed := false
	for _, o := range it.question.Options {
		if o == option {
			listed = true
			break
		}
	}
	if !listed {
		return false
	}
	it.state.Selected = option
	it.state.HasSelection = true
	return true
}

// Reveal exposes the answer. It is idempotent and cannot be undone.
func (it *Item) Reveal() {
	it.state.Revealed = true
}

// Classes returns the class of every option in input order. Questions
// without options return nil.
func (it *Item) Classes() []OptionClass {
	if !it.question.Type.HasOptions() {
		return nil
	}
	out := make([]OptionClass, len(it.question.Options))
	for i, o := range it.question.Options {
		out[i] = Classify(o, it.question.Answer, it.state)
	}
	return out
}

// Answered reports whether the question counts as attempted: a selection
// for choice questions, a reveal for the rest.
func (it *Item) Answered() bool {
	if it.question.Type.HasOptions() {
		return it.state.HasSelection
	}
	return it.state.Revealed
}

// Correct reports whether the locked-in selection matches the answer.
func (it *Item) Correct() bool {
	return it.state.Revealed && it.state.HasSelection && it.state.Selected == it.question.Answer
}
