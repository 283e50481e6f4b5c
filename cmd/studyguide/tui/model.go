// Package tui is the interactive terminal client: two URL inputs, a submit
// action, and the study guide with collapsible sections and a quiz.
package tui

import (
	"context"
	"strings"

	"studyguide/cmd/studyguide/ui"
	"studyguide/internal/analysis"
	"studyguide/internal/guide"
	"studyguide/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// UI strings carried over from the web client.
const (
	LabelURL1       = "Video Source 1"
	LabelURL2       = "Video Source 2"
	PlaceholderURL1 = "Paste first YouTube URL..."
	PlaceholderURL2 = "Paste second YouTube URL..."
	SubmitLabel     = "Generate Comparison"
	LoadingLabel    = "Synthesizing Comparison..."
	RevealLabel     = "Reveal Answer"
	IdleHint        = "Paste two YouTube URLs and press enter to build a study guide."
	Title           = "Video Comparison Study Guide"
)

// Model is the bubbletea model for the study guide screen.
type Model struct {
	ctx      context.Context
	analyzer analysis.Analyzer
	ctrl     *analysis.Controller
	opts     Options

	inputs   [2]textinput.Model
	focus    focusArea
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   ui.Styles
	markdown *ui.MarkdownRenderer
	layout   ui.LayoutConfig

	// Guide state for the current result. view is replaced on every
	// successful result and cleared on every submit.
	guide guide.Guide
	view  guide.View

	rows     []row
	targets  []int
	starts   []int
	cursor   int
	quitting bool
}

// New creates the model. a performs the requests; it is called from a
// tea.Cmd, never from Update.
func New(ctx context.Context, a analysis.Analyzer, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	styles := ui.NewStyles(ui.ThemeFor(opts.Dark))

	placeholders := [2]string{PlaceholderURL1, PlaceholderURL2}
	values := [2]string{opts.URL1, opts.URL2}
	var inputs [2]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "▶ "
		ti.PromptStyle = styles.Prompt
		ti.TextStyle = styles.InputText
		ti.CharLimit = 2048
		ti.SetValue(values[i])
		inputs[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	layout := ui.NewLayoutConfig(80, 24)
	if opts.MaxWidth > 0 {
		layout.MaxWidth = opts.MaxWidth
	}

	m := Model{
		ctx:      ctx,
		analyzer: a,
		ctrl:     analysis.NewController(),
		opts:     opts,
		inputs:   inputs,
		spinner:  sp,
		viewport: viewport.New(layout.ContentWidth(), layout.GuideHeight()),
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   styles,
		markdown: ui.NewMarkdownRenderer(ui.StyleFor(opts.MarkdownStyle, opts.Dark), layout.ContentWidth()-ui.ContentIndent),
		layout:   layout,
	}
	m.setFocus(focusURL1)
	if opts.URL1 != "" && opts.URL2 == "" {
		m.setFocus(focusURL2)
	}
	m.resize()
	m.refresh()
	return m
}

// Init starts the cursor blink and, when requested, the first submit.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.opts.AutoSubmit && m.ctrl.CanSubmit(m.inputs[0].Value(), m.inputs[1].Value()) {
		cmds = append(cmds, func() tea.Msg { return submitMsg{} })
	}
	return tea.Batch(cmds...)
}

// State returns the request lifecycle snapshot.
func (m Model) State() analysis.State { return m.ctrl.State() }

// Guide returns the guide on display.
func (m Model) Guide() guide.Guide { return m.guide }

// GuideView returns the interactive state of the guide on display.
func (m Model) GuideView() guide.View { return m.view }

// URLs returns the trimmed input values.
func (m Model) URLs() (string, string) {
	return strings.TrimSpace(m.inputs[0].Value()), strings.TrimSpace(m.inputs[1].Value())
}

// canSubmit reports whether the submit action is enabled.
func (m Model) canSubmit() bool {
	return m.ctrl.CanSubmit(m.inputs[0].Value(), m.inputs[1].Value())
}

// submit starts a request for the current inputs. Previous guide state is
// discarded before the request is sent.
func (m Model) submit() (Model, tea.Cmd) {
	if !m.canSubmit() {
		logging.UIDebug("submit ignored (phase %s)", m.ctrl.Phase())
		return m, nil
	}
	t, err := m.ctrl.Begin(m.inputs[0].Value(), m.inputs[1].Value())
	if err != nil {
		logging.UIDebug("submit rejected: %v", err)
		return m, nil
	}
	m.guide = guide.Guide{}
	m.view = guide.View{}
	m.cursor = 0
	m.refresh()
	logging.UI("submitted request %d", t.Seq)
	return m, tea.Batch(m.spinner.Tick, analyzeCmd(m.ctx, m.analyzer, t))
}

// analyzeCmd performs one request off the event loop.
func analyzeCmd(ctx context.Context, a analysis.Analyzer, t analysis.Ticket) tea.Cmd {
	return func() tea.Msg {
		result, err := a.Analyze(analysis.ContextWithRequestID(ctx, t.RequestID), t.Request)
		return analysisDoneMsg{ticket: t, result: result, err: err}
	}
}

// setFocus moves key input to f.
func (m *Model) setFocus(f focusArea) {
	m.focus = f
	for i := range m.inputs {
		if focusArea(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// resize applies the current layout to every component.
func (m *Model) resize() {
	w := m.layout.ContentWidth()
	for i := range m.inputs {
		m.inputs[i].Width = m.layout.InputWidth()
	}
	m.viewport.Width = w
	m.viewport.Height = m.layout.GuideHeight()
	m.help.Width = w
	m.markdown.SetWidth(w - ui.ContentIndent)
}
