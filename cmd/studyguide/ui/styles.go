// Package ui provides the visual styling for the studyguide terminal client.
// Colors follow the web client's slate and indigo palette with light/dark
// variants.
package ui

import (
	"os"
	"strconv"
	"strings"

	"studyguide/internal/quiz"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f8fafc") // slate-50
	LightForeground = lipgloss.Color("#0f172a") // slate-900
	LightPrimary    = lipgloss.Color("#4f46e5") // indigo-600
	LightAccent     = lipgloss.Color("#7c3aed") // violet-600
	LightMuted      = lipgloss.Color("#64748b") // slate-500
	LightBorder     = lipgloss.Color("#cbd5e1") // slate-300

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0f172a") // slate-900
	DarkForeground = lipgloss.Color("#e2e8f0") // slate-200
	DarkPrimary    = lipgloss.Color("#818cf8") // indigo-400
	DarkAccent     = lipgloss.Color("#a78bfa") // violet-400
	DarkMuted      = lipgloss.Color("#94a3b8") // slate-400
	DarkBorder     = lipgloss.Color("#334155") // slate-700

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#f87171") // red-400
	Success     = lipgloss.Color("#34d399") // emerald-400
	Warning     = lipgloss.Color("#facc15") // yellow-400
	Info        = lipgloss.Color("#60a5fa") // blue-400
	Selection   = lipgloss.Color("#818cf8") // indigo-400
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeFor returns the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// DetectDark guesses whether the terminal background is dark. The web
// client is dark-only, so dark wins when nothing says otherwise.
func DetectDark() bool {
	if v := os.Getenv("STUDYGUIDE_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			return dark
		}
	}
	// COLORFGBG is "foreground;background"; 0-6 and 8 are dark backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			return (bg >= 0 && bg <= 6) || bg == 8
		}
	}
	return true
}

// DetectTheme picks a theme from the environment.
func DetectTheme() Theme {
	return ThemeFor(DetectDark())
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Label    lipgloss.Style

	// Inputs
	Prompt       lipgloss.Style
	InputText    lipgloss.Style
	FocusedInput lipgloss.Style
	BlurredInput lipgloss.Style
	Button       lipgloss.Style
	ButtonOff    lipgloss.Style

	// Guide
	SectionHeader lipgloss.Style
	Cursor        lipgloss.Style
	Answer        lipgloss.Style
	Reveal        lipgloss.Style

	// Quiz option classes
	OptionNeutral           lipgloss.Style
	OptionSelected          lipgloss.Style
	OptionCorrect           lipgloss.Style
	OptionIncorrectSelected lipgloss.Style
	OptionDimmed            lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		InputText: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		FocusedInput: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		BlurredInput: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		ButtonOff: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		SectionHeader: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Answer: lipgloss.NewStyle().
			Foreground(Success).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(Success),

		Reveal: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true),

		OptionNeutral: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		OptionSelected: lipgloss.NewStyle().
			Foreground(Selection).
			Bold(true),

		OptionCorrect: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		OptionIncorrectSelected: lipgloss.NewStyle().
			Foreground(Destructive).
			Strikethrough(true),

		OptionDimmed: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Option returns the style for a quiz option class.
func (s Styles) Option(c quiz.OptionClass) lipgloss.Style {
	switch c {
	case quiz.ClassSelected:
		return s.OptionSelected
	case quiz.ClassCorrect:
		return s.OptionCorrect
	case quiz.ClassIncorrectSelected:
		return s.OptionIncorrectSelected
	case quiz.ClassDimmed:
		return s.OptionDimmed
	default:
		return s.OptionNeutral
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
