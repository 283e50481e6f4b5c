// Package quiz holds per-question reveal and selection state and the pure
// classifier that decides how each answer option is shown.
package quiz

// OptionClass is the visual and semantic state of one answer option.
type OptionClass int

const (
	ClassNeutral OptionClass = iota
	ClassSelected
	ClassCorrect
	ClassIncorrectSelected
	ClassDimmed
)

func (c OptionClass) String() string {
	switch c {
	case ClassNeutral:
		return "neutral"
	case ClassSelected:
		return "selected"
	case ClassCorrect:
		return "correct"
	case ClassIncorrectSelected:
		return "incorrect-selected"
	case ClassDimmed:
		return "dimmed"
	default:
		return "unknown"
	}
}

// State is the reveal and selection state of one question.
type State struct {
	Revealed     bool
	Selected     string
	HasSelection bool
}

// ClassifyFlags maps the three booleans describing an option to its class.
// correct only matters once revealed.
func ClassifyFlags(revealed, selected, correct bool) OptionClass {
	if !revealed {
		if selected {
			return ClassSelected
		}
		return ClassNeutral
	}
	switch {
	case correct:
		return ClassCorrect
	case selected:
		return ClassIncorrectSelected
	default:
		return ClassDimmed
	}
}

// Classify compares by string value. An answer that matches no option leaves
// every option without the correct class.
func Classify(option, answer string, s State) OptionClass {
	selected := s.HasSelection && option == s.Selected
	return ClassifyFlags(s.Revealed, selected, option == answer)
}
