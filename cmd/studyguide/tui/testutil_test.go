package tui

import (
	"context"
	"sync"
	"testing"

	"studyguide/internal/analysis"
	"studyguide/internal/stub"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeAnalyzer records requests and answers with a fixed outcome.
type fakeAnalyzer struct {
	mu       sync.Mutex
	result   *analysis.Result
	err      error
	requests []analysis.Request
	ids      []string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.ids = append(f.ids, analysis.RequestIDFromContext(ctx))
	return f.result, f.err
}

func (f *fakeAnalyzer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func sampleResult(t *testing.T) *analysis.Result {
	t.Helper()
	r, err := analysis.DecodeResult(stub.SampleFixture())
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return r
}

// newTestModel returns a sized model with both URLs filled in.
func newTestModel(t *testing.T, a analysis.Analyzer) Model {
	t.Helper()
	m := New(context.Background(), a, Options{
		URL1:          "https://www.youtube.com/watch?v=aircAruvnKk",
		URL2:          "https://youtu.be/Ilg3gGewQ5U",
		Dark:          true,
		MarkdownStyle: "notty",
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// runCmd executes cmd and any batch it expands to, returning every message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// doneMsg runs cmd and returns the analysis outcome it produced.
func doneMsg(t *testing.T, cmd tea.Cmd) analysisDoneMsg {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if done, ok := msg.(analysisDoneMsg); ok {
			return done
		}
	}
	t.Fatalf("command produced no analysis result")
	return analysisDoneMsg{}
}

// submitAndSettle presses ctrl+s and feeds the result back.
func submitAndSettle(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, "ctrl+s")
	return update(t, m, doneMsg(t, cmd))
}

// cursorID returns the identity of the row under the cursor.
func cursorID(m Model) rowID {
	if idx := m.cursorRow(); idx >= 0 {
		return m.rows[idx].rowID
	}
	return rowID{kind: -1}
}

// moveTo presses down until the cursor rests on want.
func moveTo(t *testing.T, m Model, want rowID) Model {
	t.Helper()
	for m.cursor > 0 {
		m, _ = press(t, m, "up")
	}
	for i := 0; i < len(m.targets); i++ {
		if cursorID(m) == want {
			return m
		}
		m, _ = press(t, m, "j")
	}
	t.Fatalf("row %+v is not focusable", want)
	return m
}
