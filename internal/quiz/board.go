package quiz

import (
	"fmt"

	"studyguide/internal/analysis"
	"studyguide/internal/logging"
)

// Board holds one Item per question, keyed by question id, in input order.
type Board struct {
	order []string
	items map[string]*Item
}

// Keys returns the state key for every question. Duplicate ids after the
// first become "<id>#<n>" and empty ids become "#<position>" so every
// question keeps independent state.
func Keys(questions []analysis.QuizQuestion) []string {
	keys := make([]string, len(questions))
	seen := make(map[string]int, len(questions))
	for i, q := range questions {
		key := q.ID.String()
		if q.ID.IsZero() {
			key = fmt.Sprintf("#%d", i+1)
		}
		if n := seen[key]; n > 0 {
			base := key
			for {
				n++
				key = fmt.Sprintf("%s#%d", base, n)
				if seen[key] == 0 {
					break
				}
			}
			seen[base] = n
		}
		seen[key]++
		keys[i] = key
	}
	return keys
}

// NewBoard builds fresh state for questions.
func NewBoard(questions []analysis.QuizQuestion) *Board {
	b := &Board{
		order: make([]string, 0, len(questions)),
		items: make(map[string]*Item, len(questions)),
	}
	for i, key := range Keys(questions) {
		q := questions[i]
		if key != q.ID.String() {
			logging.QuizWarn("question %d has duplicate or missing id %q, keyed as %q", i+1, q.ID.String(), key)
		}
		if q.Type.HasOptions() && !q.AnswerListed() {
			logging.QuizWarn("question %s: answer %q is not one of its options", key, q.Answer)
		}
		b.order = append(b.order, key)
		b.items[key] = NewItem(key, q)
	}
	logging.QuizDebug("board built with %d questions", len(b.order))
	return b
}

// Get returns the item for key.
func (b *Board) Get(key string) (*Item, bool) {
	it, ok := b.items[key]
	return it, ok
}

// Items returns the items in input order.
func (b *Board) Items() []*Item {
	out := make([]*Item, len(b.order))
	for i, k := range b.order {
		out[i] = b.items[k]
	}
	return out
}

// Len returns the number of questions.
func (b *Board) Len() int { return len(b.order) }

// Select forwards to the item for key. Unknown keys are a no-op.
func (b *Board) Select(key, option string) bool {
	it, ok := b.items[key]
	if !ok {
		return false
	}
	return it.Select(option)
}

// Reveal forwards to the item for key. Unknown keys are a no-op.
func (b *Board) Reveal(key string) {
	if it, ok := b.items[key]; ok {
		it.Reveal()
	}
}

// Progress summarizes the board.
type Progress struct {
	Total    int
	Revealed int
	Answered int
	Correct  int
}

// Progress counts revealed, answered and correctly answered questions.
func (b *Board) Progress() Progress {
	p := Progress{Total: len(b.order)}
	for _, k := range b.order {
		it := b.items[k]
		if it.Revealed() {
			p.Revealed++
		}
		if it.Answered() {
			p.Answered++
		}
		if it.Correct() {
			p.Correct++
		}
	}
	return p
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d revealed, %d correct", p.Revealed, p.Total, p.Correct)
}
