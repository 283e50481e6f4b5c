package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studyguide/internal/analysis"
	"studyguide/internal/guide"
	"studyguide/internal/quiz"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, Options{})
	assert.Equal(t, focusURL1, m.focus)
	assert.Equal(t, analysis.PhaseIdle, m.State().Phase)
	assert.True(t, m.Guide().Empty())
	assert.False(t, m.canSubmit())

	view := m.View()
	assert.Contains(t, view, LabelURL1)
	assert.Contains(t, view, LabelURL2)
	assert.Contains(t, view, SubmitLabel)
	assert.Contains(t, view, IdleHint)
}

func TestNew_FocusesSecondInputWhenFirstIsPrefilled(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, Options{URL1: "https://youtu.be/a"})
	assert.Equal(t, focusURL2, m.focus)
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, Options{MarkdownStyle: "notty"})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 116, m.viewport.Width)
	assert.Equal(t, m.layout.GuideHeight(), m.viewport.Height)

	assert.NotPanics(t, func() {
		update(t, m, tea.WindowSizeMsg{Width: -1, Height: -1})
		update(t, m, tea.WindowSizeMsg{Width: 0, Height: 0})
	})
}

func TestSubmit_DisabledWithoutBothURLs(t *testing.T) {
	fa := &fakeAnalyzer{}
	m := New(context.Background(), fa, Options{URL1: "https://youtu.be/a", URL2: "   "})
	m, cmd := press(t, m, "ctrl+s")
	assert.Nil(t, cmd)
	assert.Equal(t, analysis.PhaseIdle, m.State().Phase)
	assert.Zero(t, fa.calls())
}

func TestSubmit_EnterOnFirstInputMovesToSecond(t *testing.T) {
	m := New(context.Background(), &fakeAnalyzer{}, Options{})
	for _, r := range "https://youtu.be/a" {
		m, _ = press(t, m, string(r))
	}
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, focusURL2, m.focus)
	u1, u2 := m.URLs()
	assert.Equal(t, "https://youtu.be/a", u1)
	assert.Empty(t, u2)
}

func TestSubmit_LoadingThenSuccess(t *testing.T) {
	fa := &fakeAnalyzer{result: sampleResult(t)}
	m := newTestModel(t, fa)

	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, analysis.PhaseLoading, m.State().Phase)
	assert.Contains(t, m.View(), LoadingLabel)
	assert.False(t, m.canSubmit(), "submit must be disabled while loading")

	// A second submit while loading is ignored.
	m2, cmd2 := press(t, m, "ctrl+s")
	assert.Nil(t, cmd2)
	assert.Equal(t, m.State().Seq, m2.State().Seq)

	done := doneMsg(t, cmd)
	require.Equal(t, 1, fa.calls())
	assert.Equal(t, "https://www.youtube.com/watch?v=aircAruvnKk", fa.requests[0].URL1)
	assert.Equal(t, "https://youtu.be/Ilg3gGewQ5U", fa.requests[0].URL2)
	assert.Equal(t, done.ticket.RequestID, fa.ids[0])

	m = update(t, m, done)
	assert.Equal(t, analysis.PhaseSuccess, m.State().Phase)
	assert.Equal(t, focusGuide, m.focus)
	require.Len(t, m.Guide().Sections, 7)

	view := m.View()
	assert.NotContains(t, view, LoadingLabel)
	for _, title := range []string{"Combined Summary", "Comparative Insights", "Key Takeaways",
		"Knowledge Check", "Answer Key", "Difficulty-Based Questions", "Final Learning Notes"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, "What a neural network is", "summary is open by default")
	assert.Contains(t, view, "Quiz: 0/4 revealed, 0 correct")
	assert.Contains(t, view, "1/7 sections open")
}

func TestSubmit_Error(t *testing.T) {
	fa := &fakeAnalyzer{err: &analysis.StatusError{Code: 500}}
	m := submitAndSettle(t, newTestModel(t, fa))

	state := m.State()
	assert.Equal(t, analysis.PhaseError, state.Phase)
	assert.Equal(t, analysis.MessageFailed, state.ErrorMessage)
	assert.Nil(t, state.Result)
	assert.True(t, m.Guide().Empty())
	assert.Contains(t, m.View(), analysis.MessageFailed)
	assert.True(t, m.canSubmit(), "submit is enabled again after an error")
}

func TestSubmit_Unreachable(t *testing.T) {
	fa := &fakeAnalyzer{err: errors.Join(analysis.ErrUnreachable, errors.New("dial tcp: connection refused"))}
	m := submitAndSettle(t, newTestModel(t, fa))
	assert.Equal(t, analysis.MessageUnreachable, m.State().ErrorMessage)
}

func TestSubmit_ResubmitClearsGuide(t *testing.T) {
	fa := &fakeAnalyzer{result: sampleResult(t)}
	m := submitAndSettle(t, newTestModel(t, fa))
	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyQuiz})
	m, _ = press(t, m, "enter")
	require.True(t, m.GuideView().IsOpen(guide.KeyQuiz))

	m, cmd := press(t, m, "ctrl+s")
	require.NotNil(t, cmd)
	assert.True(t, m.Guide().Empty(), "guide is cleared on submit")
	assert.Nil(t, m.GuideView().Sections)

	m = update(t, m, doneMsg(t, cmd))
	assert.False(t, m.GuideView().IsOpen(guide.KeyQuiz), "new result starts with defaults")
	assert.True(t, m.GuideView().IsOpen(guide.KeySummary))
}

func TestSubmit_StaleResultIsDropped(t *testing.T) {
	fa := &fakeAnalyzer{result: sampleResult(t)}
	m := newTestModel(t, fa)
	m, cmd := press(t, m, "ctrl+s")
	first := doneMsg(t, cmd)
	m = update(t, m, first)

	m, cmd = press(t, m, "ctrl+s")
	require.NotNil(t, cmd)
	m = update(t, m, first)
	assert.Equal(t, analysis.PhaseLoading, m.State().Phase, "stale ticket must not settle")

	m = update(t, m, doneMsg(t, cmd))
	assert.Equal(t, analysis.PhaseSuccess, m.State().Phase)
}

func TestInit_AutoSubmit(t *testing.T) {
	fa := &fakeAnalyzer{result: sampleResult(t)}
	m := New(context.Background(), fa, Options{
		URL1: "https://youtu.be/a", URL2: "https://youtu.be/b", AutoSubmit: true,
	})
	var submit bool
	for _, msg := range runCmd(m.Init()) {
		if _, ok := msg.(submitMsg); ok {
			submit = true
		}
	}
	require.True(t, submit)

	next, cmd := m.Update(submitMsg{})
	m = next.(Model)
	assert.Equal(t, analysis.PhaseLoading, m.State().Phase)
	m = update(t, m, doneMsg(t, cmd))
	assert.Equal(t, analysis.PhaseSuccess, m.State().Phase)
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{})
	_, cmd := m.Update(m.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{})
	assert.Equal(t, focusURL1, m.focus)
	m, _ = press(t, m, "tab")
	assert.Equal(t, focusURL2, m.focus)
	m, _ = press(t, m, "tab")
	assert.Equal(t, focusGuide, m.focus)
	m, _ = press(t, m, "tab")
	assert.Equal(t, focusURL1, m.focus)
	m, _ = press(t, m, "shift+tab")
	assert.Equal(t, focusGuide, m.focus)
}

func TestGuideKeysDoNotReachInputs(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))
	u1, _ := m.URLs()
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "r")
	after, _ := m.URLs()
	assert.Equal(t, u1, after)
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"ctrl+c", "esc"} {
		m := newTestModel(t, &fakeAnalyzer{})
		m, cmd := press(t, m, k)
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.Quit(), cmd(), k)
		assert.Empty(t, m.View())
	}
}

func TestSectionToggle(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))

	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyTakeaways})
	assert.NotContains(t, m.View(), "Learning means minimizing a cost function.")
	m, _ = press(t, m, "enter")
	assert.Contains(t, m.View(), "Learning means minimizing a cost function.")
	assert.True(t, m.GuideView().IsOpen(guide.KeyTakeaways))
	assert.Equal(t, rowID{kind: rowSection, section: guide.KeyTakeaways}, cursorID(m), "cursor stays on the header")

	m, _ = press(t, m, "space")
	assert.False(t, m.GuideView().IsOpen(guide.KeyTakeaways))

	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeySummary})
	m, _ = press(t, m, "enter")
	assert.False(t, m.GuideView().IsOpen(guide.KeySummary))
	assert.NotContains(t, m.View(), "What a neural network is")
}

func TestQuiz_SelectThenReveal(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))
	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyQuiz})
	m, _ = press(t, m, "enter")

	wrong := rowID{kind: rowOption, section: guide.KeyQuiz, qkey: "1", index: 2, option: "The learning rate"}
	right := rowID{kind: rowOption, section: guide.KeyQuiz, qkey: "1", index: 1, option: "The cost function"}

	m = moveTo(t, m, wrong)
	m, _ = press(t, m, "enter")
	it, ok := m.GuideView().Item("1")
	require.True(t, ok)
	assert.Equal(t, "The learning rate", it.State().Selected)
	assert.Equal(t, wrong, cursorID(m))

	// Selection can change before reveal.
	m = moveTo(t, m, right)
	m, _ = press(t, m, "enter")
	assert.Equal(t, "The cost function", it.State().Selected)

	m = moveTo(t, m, wrong)
	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "r")
	assert.True(t, it.Revealed())
	assert.Equal(t, []quiz.OptionClass{quiz.ClassDimmed, quiz.ClassCorrect, quiz.ClassIncorrectSelected, quiz.ClassDimmed}, it.Classes())
	assert.Contains(t, m.View(), "Incorrect. Answer: The cost function")

	// Frozen after reveal.
	m = moveTo(t, m, right)
	m, _ = press(t, m, "enter")
	assert.Equal(t, "The learning rate", it.State().Selected)
	assert.Contains(t, m.View(), "Quiz: 1/4 revealed, 0 correct")
}

func TestQuiz_RevealRowWithoutSelection(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))
	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyQuiz})
	m, _ = press(t, m, "enter")
	assert.Contains(t, m.View(), RevealLabel)

	m = moveTo(t, m, rowID{kind: rowReveal, section: guide.KeyQuiz, qkey: "2"})
	m, _ = press(t, m, "enter")
	it, _ := m.GuideView().Item("2")
	assert.True(t, it.Revealed())
	assert.False(t, it.State().HasSelection)
	assert.Equal(t, []quiz.OptionClass{quiz.ClassCorrect, quiz.ClassDimmed}, it.Classes())
	assert.Equal(t, "2", cursorID(m).qkey, "cursor stays inside the revealed question")
}

func TestQuiz_ShortAnswerReveal(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))
	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyQuiz})
	m, _ = press(t, m, "enter")
	assert.Contains(t, m.View(), guide.RevealPrompt)

	m = moveTo(t, m, rowID{kind: rowReveal, section: guide.KeyQuiz, qkey: "3"})
	m, _ = press(t, m, "enter")
	it, _ := m.GuideView().Item("3")
	assert.True(t, it.Revealed())

	var answerShown bool
	for _, r := range m.rows {
		if r.kind == rowText && r.qkey == "3" && strings.Contains(r.text, "The chain rule.") {
			answerShown = true
		}
	}
	assert.True(t, answerShown)
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	for _, k := range []guide.SectionKey{guide.KeyComparative, guide.KeyTakeaways, guide.KeyQuiz, guide.KeyAnswers} {
		m = moveTo(t, m, rowID{kind: rowSection, section: k})
		m, _ = press(t, m, "enter")
	}
	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyNotes})
	line := m.starts[m.cursorRow()]
	assert.GreaterOrEqual(t, line, m.viewport.YOffset)
	assert.Less(t, line, m.viewport.YOffset+m.viewport.Height)

	before := m.viewport.YOffset
	m, _ = press(t, m, "pgup")
	assert.LessOrEqual(t, m.viewport.YOffset, before)
}

func TestHelpToggle(t *testing.T) {
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: sampleResult(t)}))
	assert.False(t, m.help.ShowAll)
	m, _ = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "scroll down")
}

func TestQuiz_DuplicateOptionsStayReachable(t *testing.T) {
	result := &analysis.Result{
		Quiz: []analysis.QuizQuestion{{
			ID:       analysis.NumericQuestionID(1),
			Type:     analysis.QuestionMCQ,
			Question: "Pick one",
			Options:  []string{"A", "A", "B"},
			Answer:   "B",
		}},
		Notes: "N",
	}
	m := submitAndSettle(t, newTestModel(t, &fakeAnalyzer{result: result}))
	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyQuiz})
	m, _ = press(t, m, "enter")

	first := rowID{kind: rowOption, section: guide.KeyQuiz, qkey: "1", index: 0, option: "A"}
	second := rowID{kind: rowOption, section: guide.KeyQuiz, qkey: "1", index: 1, option: "A"}
	want := []rowID{
		first,
		second,
		{kind: rowOption, section: guide.KeyQuiz, qkey: "1", index: 2, option: "B"},
		{kind: rowReveal, section: guide.KeyQuiz, qkey: "1"},
		{kind: rowSection, section: guide.KeyAnswers},
		{kind: rowSection, section: guide.KeyDifficulty},
		{kind: rowSection, section: guide.KeyNotes},
	}
	var visited []rowID
	for range want {
		m, _ = press(t, m, "down")
		visited = append(visited, cursorID(m))
	}
	assert.Equal(t, want, visited)

	m = moveTo(t, m, second)
	m, _ = press(t, m, "enter")
	it, _ := m.GuideView().Item("1")
	assert.Equal(t, "A", it.State().Selected)
	assert.Equal(t, second, cursorID(m), "cursor stays on the selected copy")

	m = moveTo(t, m, rowID{kind: rowSection, section: guide.KeyNotes})
	m, _ = press(t, m, "enter")
	assert.True(t, m.GuideView().IsOpen(guide.KeyNotes))
}

func TestInputsIgnoreEditsWhileLoading(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{result: sampleResult(t)})
	m, cmd := press(t, m, "ctrl+s")
	require.NotNil(t, cmd)
	require.NotEqual(t, focusGuide, m.focus)

	u1, u2 := m.URLs()
	m, _ = press(t, m, "x")
	a1, a2 := m.URLs()
	assert.Equal(t, u1, a1)
	assert.Equal(t, u2, a2)

	m = update(t, m, doneMsg(t, cmd))
	m, _ = press(t, m, "shift+tab")
	require.Equal(t, focusURL2, m.focus)
	m, _ = press(t, m, "x")
	_, a2 = m.URLs()
	assert.Equal(t, u2+"x", a2, "inputs accept edits once the request settles")
}
