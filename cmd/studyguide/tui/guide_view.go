package tui

import (
	"fmt"
	"strings"

	"studyguide/cmd/studyguide/ui"
	"studyguide/internal/analysis"
	"studyguide/internal/guide"
	"studyguide/internal/logging"
	"studyguide/internal/quiz"

	"github.com/charmbracelet/lipgloss"
)

// buildRows lays the guide out as rows under the current view state.
func (m Model) buildRows() []row {
	var rows []row
	add := func(id rowID, text string) {
		rows = append(rows, row{rowID: id, text: text})
	}
	for _, s := range m.guide.Sections {
		add(rowID{kind: rowSection, section: s.Key}, s.Title)
		if !m.view.IsOpen(s.Key) {
			continue
		}
		text := rowID{kind: rowText, section: s.Key}
		switch body := s.Body.(type) {
		case guide.SummaryBody:
			for _, line := range m.summaryLines(body) {
				add(text, line)
			}
		case guide.ListsBody:
			for _, line := range m.listLines(body) {
				add(text, line)
			}
		case guide.QuizBody:
			for i, e := range body.Questions {
				rows = append(rows, m.questionRows(s.Key, i, e)...)
			}
		case guide.AnswerKeyBody:
			for i, p := range body.Pairs {
				add(text, m.styles.Bold.Render(fmt.Sprintf("%d. %s", i+1, p.Question)))
				add(text, m.styles.Answer.Render("Answer: "+p.Answer))
			}
		case guide.NotesBody:
			if md := m.markdown.Render(body.Text); md != "" {
				add(text, md)
			}
		}
		if rows[len(rows)-1].kind != rowSection {
			add(text, "")
		}
	}
	return rows
}

func (m Model) summaryLines(body guide.SummaryBody) []string {
	var out []string
	for i, e := range body.Entries {
		out = append(out, m.styles.Title.Render(fmt.Sprintf("%d. %s", i+1, e.Title)))
		if md := m.markdown.Render(e.Content); md != "" {
			out = append(out, md)
		}
		for _, st := range e.Subtopics {
			out = append(out, m.styles.Bold.Render(st.Heading))
			for _, p := range st.Points {
				out = append(out, m.bullet(p))
			}
		}
	}
	return out
}

func (m Model) listLines(body guide.ListsBody) []string {
	var out []string
	for _, l := range body.Lists {
		if l.Label != "" {
			out = append(out, m.styles.Label.Render(l.Label))
		}
		if len(l.Items) == 0 {
			out = append(out, m.styles.Muted.Render("  (none)"))
		}
		for _, item := range l.Items {
			out = append(out, m.bullet(item))
		}
	}
	return out
}

func (m Model) bullet(s string) string {
	w := m.layout.ContentWidth() - ui.OptionIndent
	return m.styles.Body.Render(lipgloss.NewStyle().Width(w).Render("• " + s))
}

func (m Model) questionRows(section guide.SectionKey, i int, e guide.QuizEntry) []row {
	q := e.Question
	var state quiz.State
	if it, ok := m.view.Item(e.Key); ok {
		state = it.State()
	}
	head := fmt.Sprintf("Q%d. %s", i+1, q.Question)
	rows := []row{{
		rowID: rowID{kind: rowQuestion, section: section, qkey: e.Key},
		text:  m.styles.Bold.Render(head) + " " + m.styles.Subtitle.Render("("+guide.TypeLabel(q.Type)+")"),
	}}

	if !q.Type.HasOptions() {
		if state.Revealed {
			rows = append(rows, row{
				rowID: rowID{kind: rowText, section: section, qkey: e.Key},
				text:  m.styles.Answer.Render(q.Answer),
			})
		} else {
			rows = append(rows, row{
				rowID: rowID{kind: rowReveal, section: section, qkey: e.Key},
				text:  m.styles.Reveal.Render(guide.RevealPrompt),
			})
		}
		return rows
	}

	for j, o := range q.Options {
		class := quiz.Classify(o, q.Answer, state)
		rows = append(rows, row{
			rowID: rowID{kind: rowOption, section: section, qkey: e.Key, index: j, option: o},
			text:  m.styles.Option(class).Render(guide.Marker(class) + " " + o),
		})
	}
	if state.Revealed {
		verdict := m.styles.Muted.Render("Answer: " + q.Answer)
		if state.HasSelection {
			if state.Selected == q.Answer {
				verdict = m.styles.Success.Render("Correct!")
			} else {
				verdict = m.styles.Error.Render("Incorrect. Answer: " + q.Answer)
			}
		}
		rows = append(rows, row{rowID: rowID{kind: rowText, section: section, qkey: e.Key}, text: verdict})
	} else {
		rows = append(rows, row{
			rowID: rowID{kind: rowReveal, section: section, qkey: e.Key},
			text:  m.styles.Reveal.Render("[ " + RevealLabel + " ]"),
		})
	}
	return rows
}

// refresh rebuilds the rows, keeps the cursor on the same row when it still
// exists and scrolls it into view.
func (m *Model) refresh() {
	var current rowID
	hadCursor := m.cursorRow() >= 0
	if hadCursor {
		current = m.rows[m.cursorRow()].rowID
	}

	m.rows = m.buildRows()
	m.targets = nil
	for i, r := range m.rows {
		if r.focusable() {
			m.targets = append(m.targets, i)
		}
	}
	if hadCursor {
		m.restoreCursor(current)
	}
	m.clampCursor()

	m.starts = nil
	if len(m.rows) == 0 {
		m.viewport.SetContent(m.emptyGuideText())
		m.viewport.GotoTop()
		return
	}
	lines := make([]string, len(m.rows))
	line := 0
	for i, r := range m.rows {
		m.starts = append(m.starts, line)
		lines[i] = m.renderRow(i, r)
		line += strings.Count(lines[i], "\n") + 1
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.scrollToCursor()
}

// restoreCursor puts the cursor back on id, or on the first row of the same
// question when id is gone (a reveal row disappears after reveal).
func (m *Model) restoreCursor(id rowID) {
	for t, idx := range m.targets {
		if m.rows[idx].rowID == id {
			m.cursor = t
			return
		}
	}
	if id.qkey == "" {
		return
	}
	for t, idx := range m.targets {
		if m.rows[idx].qkey == id.qkey {
			m.cursor = t
			return
		}
	}
}

func (m Model) emptyGuideText() string {
	switch m.ctrl.Phase() {
	case analysis.PhaseLoading:
		return m.styles.Muted.Render(LoadingLabel)
	case analysis.PhaseError:
		return ""
	default:
		return m.styles.Muted.Render(IdleHint)
	}
}

// renderRow draws one row with the cursor marker and indentation.
func (m Model) renderRow(i int, r row) string {
	prefix := "  "
	if m.focus == focusGuide && m.cursorRow() == i {
		prefix = m.styles.Cursor.Render("› ")
	}
	switch r.kind {
	case rowSection:
		glyph := guide.GlyphClosed
		if m.view.IsOpen(r.section) {
			glyph = guide.GlyphOpen
		}
		return prefix + m.styles.SectionHeader.Render(glyph+" "+r.text)
	case rowOption, rowReveal:
		return prefix + strings.Repeat(" ", ui.OptionIndent) + r.text
	default:
		return indent(r.text, strings.Repeat(" ", ui.ContentIndent+2))
	}
}

func indent(s, pad string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// cursorRow returns the row index under the cursor, or -1.
func (m Model) cursorRow() int {
	if m.cursor < 0 || m.cursor >= len(m.targets) {
		return -1
	}
	return m.targets[m.cursor]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.targets) {
		m.cursor = len(m.targets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// scrollToCursor keeps the cursor line inside the viewport.
func (m *Model) scrollToCursor() {
	idx := m.cursorRow()
	if idx < 0 || m.focus != focusGuide {
		return
	}
	line := m.starts[idx]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// moveCursor shifts the cursor by delta focusable rows.
func (m *Model) moveCursor(delta int) {
	if len(m.targets) == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.refresh()
}

// activate applies enter/space to the row under the cursor.
func (m *Model) activate() {
	idx := m.cursorRow()
	if idx < 0 {
		return
	}
	r := m.rows[idx]
	switch r.kind {
	case rowSection:
		if m.view.Sections != nil {
			m.view.Sections.Toggle(string(r.section))
			logging.UIDebug("section %s open=%v", r.section, m.view.IsOpen(r.section))
		}
	case rowOption:
		if m.view.Quiz != nil && m.view.Quiz.Select(r.qkey, r.option) {
			logging.QuizDebug("question %s selected %q", r.qkey, r.option)
		}
	case rowReveal:
		m.reveal(r.qkey)
	}
	m.refresh()
}

// revealAtCursor reveals the question the cursor is in, if any.
func (m *Model) revealAtCursor() {
	idx := m.cursorRow()
	if idx < 0 || m.rows[idx].qkey == "" {
		return
	}
	m.reveal(m.rows[idx].qkey)
	m.refresh()
}

func (m *Model) reveal(qkey string) {
	if m.view.Quiz == nil {
		return
	}
	m.view.Quiz.Reveal(qkey)
	logging.QuizDebug("question %s revealed (%s)", qkey, m.view.Quiz.Progress())
}
