package analysis_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studyguide/internal/analysis"
	"studyguide/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionID_AcceptsNumbersAndStrings(t *testing.T) {
	var qs []analysis.QuizQuestion
	require.NoError(t, json.Unmarshal([]byte(`[{"id": 7}, {"id": "q-8"}, {"id": null}, {}]`), &qs))

	assert.Equal(t, "7", qs[0].ID.String())
	assert.Equal(t, "q-8", qs[1].ID.String())
	assert.True(t, qs[2].ID.IsZero())
	assert.True(t, qs[3].ID.IsZero())

	out, err := json.Marshal(qs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "7", string(out))
	out, err = json.Marshal(qs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, `"q-8"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &qs[0]))
}

func TestDecodeResult_PartialPayload(t *testing.T) {
	r, err := analysis.DecodeResult([]byte(`{"summary":[{"title":"only"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "only", r.Summary[0].Title)
	assert.Empty(t, r.Summary[0].Subtopics)
	assert.Empty(t, r.Quiz)

	_, err = analysis.DecodeResult([]byte(`[]`))
	assert.Error(t, err)
}

func TestDecodeResult_MalformedSectionKeepsTheRest(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, r *analysis.Result)
	}{
		{
			name: "boolean answer",
			body: `{"quiz":[{"id":1,"type":"tf","question":"Q?","options":["True","False"],"answer":true}],"notes":"N"}`,
			check: func(t *testing.T, r *analysis.Result) {
				require.Len(t, r.Quiz, 1)
				assert.Equal(t, "true", r.Quiz[0].Answer)
				assert.False(t, r.Quiz[0].AnswerListed(), "no option matches the text form")
				assert.Equal(t, "N", r.Notes)
			},
		},
		{
			name: "numeric answer",
			body: `{"quiz":[{"id":2,"type":"mcq","question":"2+1?","options":["2","3"],"answer":3}]}`,
			check: func(t *testing.T, r *analysis.Result) {
				require.Len(t, r.Quiz, 1)
				assert.Equal(t, "3", r.Quiz[0].Answer)
			},
		},
		{
			name: "notes array",
			body: `{"notes":["N1","N2"],"keyTakeaways":["K"],"summary":[{"title":"X","content":"Y"}]}`,
			check: func(t *testing.T, r *analysis.Result) {
				assert.Empty(t, r.Notes)
				assert.Equal(t, []string{"K"}, r.KeyTakeaways)
				require.Len(t, r.Summary, 1)
				assert.Equal(t, "X", r.Summary[0].Title)
			},
		},
		{
			name: "mixed takeaways",
			body: `{"keyTakeaways":["K",3],"notes":"N"}`,
			check: func(t *testing.T, r *analysis.Result) {
				assert.Equal(t, []string{"K"}, r.KeyTakeaways)
				assert.Equal(t, "N", r.Notes)
			},
		},
		{
			name: "one bad question",
			body: `{"quiz":[{"id":1,"type":"mcq","question":"Q1","options":"A","answer":"A"},{"id":2,"type":"tf","question":"Q2","options":["True","False"],"answer":"False"}]}`,
			check: func(t *testing.T, r *analysis.Result) {
				require.Len(t, r.Quiz, 1)
				assert.Equal(t, "2", r.Quiz[0].ID.String())
			},
		},
		{
			name: "insights of the wrong shape",
			body: `{"comparativeInsights":"none","difficultyQuestions":{"easy":["E"],"medium":[],"hard":[]}}`,
			check: func(t *testing.T, r *analysis.Result) {
				assert.Empty(t, r.ComparativeInsights.Agreement)
				assert.Equal(t, []string{"E"}, r.DifficultyQuestions.Easy)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := analysis.DecodeResult([]byte(tt.body))
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestDecodeResult_LogsDroppedSections(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = logging.Initialize("", logging.Settings{}) })
	require.NoError(t, logging.Initialize(dir, logging.Settings{DebugMode: true, Level: "warn"}))

	_, err := analysis.DecodeResult([]byte(`{"notes":["N1"],"keyTakeaways":["K",3]}`))
	require.NoError(t, err)
	logging.CloseAll()

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+"_api.log"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "dropping malformed notes section")
	assert.Contains(t, content, "dropping malformed keyTakeaways[1]")
	assert.Equal(t, 2, strings.Count(content, "[WARN]"))
}

func TestQuizQuestion_AnswerListed(t *testing.T) {
	q := analysis.QuizQuestion{Type: analysis.QuestionMCQ, Options: []string{"A", "B"}, Answer: "B"}
	assert.True(t, q.AnswerListed())
	q.Answer = "b"
	assert.False(t, q.AnswerListed(), "matching is exact")

	assert.True(t, analysis.QuestionTF.HasOptions())
	assert.False(t, analysis.QuestionShort.HasOptions())
	assert.False(t, analysis.QuestionType("essay").HasOptions())
}

func TestExtractVideoID(t *testing.T) {
	tests := map[string]string{
		"https://youtu.be/abc123?t=10":                  "abc123",
		"https://youtu.be/abc123#t=10":                  "abc123",
		"https://www.youtube.com/watch?v=xyz#t=3":       "xyz",
		"https://www.youtube.com/watch?v=xyz&list=PL1":  "xyz",
		"https://www.youtube.com/live/live1?feature=sh": "live1",
		"https://youtube.com/shorts/s42?x=1":            "s42",
		"https://example.com/video":                     "",
		"   ":                                           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, analysis.ExtractVideoID(in), in)
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", analysis.UserMessage(nil))
	assert.Equal(t, analysis.MessageFailed, analysis.UserMessage(&analysis.StatusError{Code: 502}))
	assert.Contains(t, (&analysis.StatusError{Code: 502}).Error(), "502")
}
