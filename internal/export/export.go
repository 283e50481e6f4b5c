// Package export writes a study guide to an Excel workbook, one sheet per
// section.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"studyguide/internal/guide"
	"studyguide/internal/logging"

	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order.
const (
	SheetSummary    = "Summary"
	SheetInsights   = "Insights"
	SheetTakeaways  = "Takeaways"
	SheetQuiz       = "Quiz"
	SheetAnswerKey  = "Answer Key"
	SheetDifficulty = "Difficulty"
	SheetNotes      = "Notes"
)

var sheetFor = map[guide.SectionKey]string{
	guide.KeySummary:     SheetSummary,
	guide.KeyComparative: SheetInsights,
	guide.KeyTakeaways:   SheetTakeaways,
	guide.KeyQuiz:        SheetQuiz,
	guide.KeyAnswers:     SheetAnswerKey,
	guide.KeyDifficulty:  SheetDifficulty,
	guide.KeyNotes:       SheetNotes,
}

// Workbook builds the workbook for g. The caller must Close it.
func Workbook(g guide.Guide) (*excelize.File, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	first := true
	for _, s := range g.Sections {
		name, ok := sheetFor[s.Key]
		if !ok {
			continue
		}
		index, err := f.NewSheet(name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if first {
			f.SetActiveSheet(index)
			first = false
		}
		headers, rows := sectionRows(s)
		if err := writeSheet(f, name, header, headers, rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	if !first {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}
	return f, nil
}

// Bytes renders g as .xlsx data.
func Bytes(g guide.Guide) ([]byte, error) {
	f, err := Workbook(g)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes g to path.
func Save(g guide.Guide, path string) error {
	timer := logging.StartTimer(logging.CategoryExport, "workbook export")
	defer timer.Stop()

	f, err := Workbook(g)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		logging.ExportWarn("save %s failed: %v", path, err)
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	logging.Export("wrote %d sheets to %s", len(f.GetSheetList()), path)
	return nil
}

func writeSheet(f *excelize.File, sheet string, style int, headers []string, rows [][]interface{}) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := r
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func sectionRows(s guide.Section) ([]string, [][]interface{}) {
	switch body := s.Body.(type) {
	case guide.SummaryBody:
		var rows [][]interface{}
		for _, e := range body.Entries {
			rows = append(rows, []interface{}{e.Title, e.Content, "", ""})
			for _, st := range e.Subtopics {
				for _, p := range st.Points {
					rows = append(rows, []interface{}{e.Title, "", st.Heading, p})
				}
			}
		}
		return []string{"Title", "Content", "Subtopic", "Point"}, rows

	case guide.ListsBody:
		var rows [][]interface{}
		labelled := false
		for _, l := range body.Lists {
			if l.Label != "" {
				labelled = true
			}
			for _, item := range l.Items {
				rows = append(rows, []interface{}{l.Label, item})
			}
		}
		if !labelled {
			for i := range rows {
				rows[i] = []interface{}{i + 1, rows[i][1]}
			}
			return []string{"#", s.Title}, rows
		}
		return []string{"Category", "Item"}, rows

	case guide.QuizBody:
		rows := make([][]interface{}, 0, len(body.Questions))
		for _, e := range body.Questions {
			q := e.Question
			rows = append(rows, []interface{}{e.Key, guide.TypeLabel(q.Type), q.Question, strings.Join(q.Options, " | ")})
		}
		return []string{"ID", "Type", "Question", "Options"}, rows

	case guide.AnswerKeyBody:
		rows := make([][]interface{}, 0, len(body.Pairs))
		for i, p := range body.Pairs {
			rows = append(rows, []interface{}{i + 1, p.Question, p.Answer})
		}
		return []string{"#", "Question", "Answer"}, rows

	case guide.NotesBody:
		var rows [][]interface{}
		if body.Text != "" {
			rows = append(rows, []interface{}{body.Text})
		}
		return []string{"Notes"}, rows
	}
	return []string{s.Title}, nil
}
