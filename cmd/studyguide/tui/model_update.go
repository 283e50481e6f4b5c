package tui

import (
	"studyguide/cmd/studyguide/ui"
	"studyguide/internal/analysis"
	"studyguide/internal/guide"
	"studyguide/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update routes messages. Controller, disclosure and quiz state are only
// touched here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		width, height := msg.Width, msg.Height
		if width < 0 {
			width = 0
		}
		if height < 0 {
			height = 0
		}
		maxWidth := m.layout.MaxWidth
		m.layout = ui.NewLayoutConfig(width, height)
		m.layout.MaxWidth = maxWidth
		m.resize()
		m.refresh()
		return m, nil

	case submitMsg:
		return m.submit()

	case analysisDoneMsg:
		return m.handleAnalysisDone(msg), nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus != focusGuide {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleAnalysisDone settles the controller. Results for superseded
// tickets are dropped.
func (m Model) handleAnalysisDone(msg analysisDoneMsg) Model {
	if !m.ctrl.Settle(msg.ticket, msg.result, msg.err) {
		logging.UIDebug("dropped stale result for request %d", msg.ticket.Seq)
		return m
	}
	state := m.ctrl.State()
	if state.Phase == analysis.PhaseSuccess {
		m.guide = guide.Build(state.Result)
		m.view = guide.NewView(m.guide)
		m.cursor = 0
		m.setFocus(focusGuide)
		m.viewport.GotoTop()
		logging.UI("guide ready: %d sections, %d questions", len(m.guide.Sections), m.view.Quiz.Len())
	} else {
		logging.UI("request %d ended in %s: %s", msg.ticket.Seq, state.Phase, state.ErrorMessage)
	}
	m.refresh()
	return m
}
