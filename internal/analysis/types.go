// Package analysis owns the boundary to the video comparison backend: the
// result schema, the HTTP client for POST /api/analyze, and the request
// lifecycle controller that gates which view the client shows.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"studyguide/internal/logging"
)

// QuestionType is the kind of a quiz question.
type QuestionType string

const (
	QuestionMCQ   QuestionType = "mcq"   // multiple choice
	QuestionTF    QuestionType = "tf"    // true/false
	QuestionShort QuestionType = "short" // free text, answer shown on reveal
)

// HasOptions reports whether questions of this type are answered by picking
// one of the listed options. Unknown types behave like short answers.
func (t QuestionType) HasOptions() bool {
	return t == QuestionMCQ || t == QuestionTF
}

// QuestionID identifies a quiz question. The backend emits numeric ids but
// strings are accepted too; the original JSON form is preserved on encode.
type QuestionID struct {
	value   string
	numeric bool
}

// NewQuestionID builds a string-typed id.
func NewQuestionID(s string) QuestionID { return QuestionID{value: s} }

// NumericQuestionID builds a number-typed id.
func NumericQuestionID(n int64) QuestionID {
	return QuestionID{value: strconv.FormatInt(n, 10), numeric: true}
}

func (id QuestionID) String() string { return id.value }

// IsZero reports whether the id is absent.
func (id QuestionID) IsZero() bool { return id.value == "" }

// UnmarshalJSON accepts a JSON number or string.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = QuestionID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("question id: %w", err)
		}
		*id = QuestionID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*id = QuestionID{value: n.String(), numeric: true}
	return nil
}

// MarshalJSON writes the id back in the form it was received.
func (id QuestionID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// Subtopic is a nested heading with its bullet points.
type Subtopic struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

// SummaryItem is one entry of the combined summary. Content and Subtopics
// are both optional.
type SummaryItem struct {
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	Subtopics []Subtopic `json:"subtopics,omitempty"`
}

// ComparativeInsights lists where each video explains better and where they agree.
type ComparativeInsights struct {
	Video1Better []string `json:"video1Better"`
	Video2Better []string `json:"video2Better"`
	Agreement    []string `json:"agreement"`
}

// QuizQuestion is a single question of the knowledge check.
type QuizQuestion struct {
	ID       QuestionID   `json:"id"`
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Options  []string     `json:"options,omitempty"`
	Answer   string       `json:"answer"`
}

// UnmarshalJSON decodes a question, accepting a boolean or numeric answer
// in its JSON text form ("true", "3"). An array or object answer is
// treated as absent.
func (q *QuizQuestion) UnmarshalJSON(data []byte) error {
	type plain QuizQuestion
	var aux struct {
		plain
		Answer json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	answer, err := answerText(aux.Answer)
	if err != nil {
		return err
	}
	*q = QuizQuestion(aux.plain)
	q.Answer = answer
	return nil
}

func answerText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("question answer: %w", err)
		}
		return s, nil
	case 't', 'f':
		return string(raw), nil
	case 'n', '[', '{':
		return "", nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("question answer: %w", err)
		}
		return n.String(), nil
	}
}

// AnswerListed reports whether Answer literally matches one of Options.
// A false result on a choice question is a data-quality defect.
func (q QuizQuestion) AnswerListed() bool {
	for _, o := range q.Options {
		if o == q.Answer {
			return true
		}
	}
	return false
}

// DifficultyQuestions buckets open questions by difficulty.
type DifficultyQuestions struct {
	Easy   []string `json:"easy"`
	Medium []string `json:"medium"`
	Hard   []string `json:"hard"`
}

// Result is the analysis payload returned on success. It is immutable for
// the lifetime of the displayed guide.
type Result struct {
	Summary             []SummaryItem       `json:"summary"`
	ComparativeInsights ComparativeInsights `json:"comparativeInsights"`
	KeyTakeaways        []string            `json:"keyTakeaways"`
	Quiz                []QuizQuestion      `json:"quiz"`
	DifficultyQuestions DifficultyQuestions `json:"difficultyQuestions"`
	Notes               string              `json:"notes"`
}

// Request is the body sent to the analysis endpoint.
type Request struct {
	URL1 string `json:"url1" validate:"required"`
	URL2 string `json:"url2" validate:"required"`
}

// DecodeResult parses a JSON analysis payload. Only a body that is not a
// JSON object fails. Each section decodes on its own: a malformed section
// is left empty, and a malformed summary item, takeaway or quiz question is
// skipped, so the rest of the guide still renders.
func DecodeResult(data []byte) (*Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	var r Result
	r.Summary = decodeItems[SummaryItem](fields, "summary")
	decodeSection(fields, "comparativeInsights", &r.ComparativeInsights)
	r.KeyTakeaways = decodeItems[string](fields, "keyTakeaways")
	r.Quiz = decodeItems[QuizQuestion](fields, "quiz")
	decodeSection(fields, "difficultyQuestions", &r.DifficultyQuestions)
	decodeSection(fields, "notes", &r.Notes)
	return &r, nil
}

// decodeSection sets *dst from fields[name], leaving it zero when the
// section is absent or malformed.
func decodeSection[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.APIWarn("dropping malformed %s section: %v", name, err)
		return
	}
	*dst = v
}

// decodeItems decodes the array fields[name] element by element, skipping
// elements that do not decode.
func decodeItems[T any](fields map[string]json.RawMessage, name string) []T {
	var raws []json.RawMessage
	decodeSection(fields, name, &raws)
	if raws == nil {
		return nil
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			logging.APIWarn("dropping malformed %s[%d]: %v", name, i, err)
			continue
		}
		out = append(out, v)
	}
	return out
}
