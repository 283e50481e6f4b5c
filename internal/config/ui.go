package config

// Theme values for ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// UIConfig holds terminal UI configuration.
type UIConfig struct {
	// Theme is auto, dark or light. Auto asks the terminal.
	Theme string `yaml:"theme" validate:"omitempty,oneof=auto dark light"`

	// MarkdownStyle is a glamour standard style name (auto, dark, light, notty, ascii).
	MarkdownStyle string `yaml:"markdown_style" validate:"omitempty,oneof=auto dark light notty ascii dracula pink tokyo-night"`

	// Width caps the rendered guide width (0 = terminal width).
	Width int `yaml:"width,omitempty" validate:"min=0"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:         ThemeAuto,
		MarkdownStyle: "auto",
		Width:         0,
	}
}

// DarkMode resolves the theme; detect is consulted for auto.
func (c UIConfig) DarkMode(detect func() bool) bool {
	switch c.Theme {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		if detect == nil {
			return true
		}
		return detect()
	}
}
