package tui

import (
	"studyguide/internal/analysis"
	"studyguide/internal/guide"
)

// focusArea is the component receiving key input.
type focusArea int

const (
	focusURL1 focusArea = iota
	focusURL2
	focusGuide
	focusCount
)

func (f focusArea) String() string {
	switch f {
	case focusURL1:
		return "url1"
	case focusURL2:
		return "url2"
	case focusGuide:
		return "guide"
	default:
		return "unknown"
	}
}

// Options configures a new Model.
type Options struct {
	// URL1 and URL2 prefill the inputs.
	URL1 string
	URL2 string
	// AutoSubmit starts a request on Init when both URLs are set.
	AutoSubmit bool
	// Dark selects the dark palette.
	Dark bool
	// MarkdownStyle overrides the glamour style ("dark", "light", "notty", ...).
	MarkdownStyle string
	// MaxWidth caps the content width; zero keeps the layout default.
	MaxWidth int
}

// analysisDoneMsg carries the outcome of one request back to Update.
type analysisDoneMsg struct {
	ticket analysis.Ticket
	result *analysis.Result
	err    error
}

// submitMsg asks Update to submit the current inputs.
type submitMsg struct{}

// rowKind is the role of one line block in the guide viewport.
type rowKind int

const (
	rowSection rowKind = iota
	rowText
	rowQuestion
	rowOption
	rowReveal
)

// rowID identifies a row across rebuilds so the cursor can follow it.
// Option rows carry their position because option text may repeat.
type rowID struct {
	kind    rowKind
	section guide.SectionKey
	qkey    string
	index   int
	option  string
}

// row is one block of rendered guide content.
type row struct {
	rowID
	text string
}

// focusable reports whether the cursor may rest on the row.
func (r row) focusable() bool {
	switch r.kind {
	case rowSection, rowOption, rowReveal:
		return true
	default:
		return false
	}
}
