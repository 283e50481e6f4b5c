// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for the single-column study guide screen
const (
	// Viewport padding
	ViewportHorizontalPadding = 4

	// Fixed chrome above and below the guide viewport
	HeaderHeight   = 1
	InputsHeight   = 8 // two labelled, bordered inputs
	ActionHeight   = 2 // submit button or spinner, plus error line
	FooterHeight   = 2 // progress line and help
	DividerHeight  = 1
	ContentIndent  = 2
	OptionIndent   = 4
	MinGuideHeight = 3

	// Responsive breakpoints
	MinimumTerminalWidth = 60
	CompactModeWidth     = 100
	MaxReadableWidth     = 120
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
	// MaxWidth caps the content width when positive.
	MaxWidth int
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
		MaxWidth:       MaxReadableWidth,
	}
}

// ContentWidth returns the usable content width
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - ViewportHorizontalPadding
	if l.MaxWidth > 0 && w > l.MaxWidth {
		w = l.MaxWidth
	}
	if w < MinimumTerminalWidth-ViewportHorizontalPadding {
		w = MinimumTerminalWidth - ViewportHorizontalPadding
	}
	return w
}

// GuideHeight returns the rows left for the guide viewport
func (l LayoutConfig) GuideHeight() int {
	h := l.TerminalHeight - HeaderHeight - InputsHeight - ActionHeight - FooterHeight - DividerHeight
	if h < MinGuideHeight {
		return MinGuideHeight
	}
	return h
}

// InputWidth returns the text width inside a bordered input
func (l LayoutConfig) InputWidth() int {
	// border (2) + padding (2) + prompt (2)
	return l.ContentWidth() - 6
}
