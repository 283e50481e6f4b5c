package tui

import (
	"fmt"
	"strings"

	"studyguide/internal/analysis"

	"github.com/charmbracelet/lipgloss"
)

// View renders the screen top to bottom: header, inputs, action line,
// guide viewport and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.layout.ContentWidth()

	var sections []string
	sections = append(sections, m.styles.Header.Width(width).Render(Title))
	sections = append(sections, m.renderInput(0, LabelURL1), m.renderInput(1, LabelURL2))
	sections = append(sections, m.renderAction())
	sections = append(sections, m.styles.RenderDivider(width))
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.renderFooter())

	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderInput(i int, label string) string {
	box := m.styles.BlurredInput
	if m.focus == focusArea(i) {
		box = m.styles.FocusedInput
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Label.Render(label),
		box.Width(m.layout.ContentWidth()-2).Render(m.inputs[i].View()),
	)
}

// renderAction draws the submit button, or the spinner while loading, and
// the single error line.
func (m Model) renderAction() string {
	state := m.ctrl.State()
	var action string
	switch {
	case state.Phase == analysis.PhaseLoading:
		action = m.spinner.View() + " " + m.styles.Spinner.Render(LoadingLabel)
	case m.canSubmit():
		action = m.styles.Button.Render(SubmitLabel)
	default:
		action = m.styles.ButtonOff.Render(SubmitLabel)
	}

	errLine := ""
	if state.Phase == analysis.PhaseError {
		errLine = m.styles.Error.Width(m.layout.ContentWidth()).Render(state.ErrorMessage)
	}
	return action + "\n" + errLine
}

func (m Model) renderFooter() string {
	var parts []string
	if m.view.Quiz != nil && m.view.Quiz.Len() > 0 {
		parts = append(parts, m.styles.Info.Render("Quiz: "+m.view.Quiz.Progress().String()))
	}
	if m.view.Sections != nil {
		open := 0
		keys := m.view.Sections.Keys()
		for _, k := range keys {
			if m.view.Sections.IsOpen(k) {
				open++
			}
		}
		parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("%d/%d sections open", open, len(keys))))
	}
	status := strings.Join(parts, m.styles.Muted.Render(" · "))
	return status + "\n" + m.help.View(m.keys)
}
