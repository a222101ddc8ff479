// Package export writes completed quiz results to a spreadsheet.
package export

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/pathquiz/internal/quiz"
)

const (
	// SheetName is the worksheet holding the results.
	SheetName = "Results"

	// DefaultFileName is used when no output path is configured.
	DefaultFileName = "JSONPathExperimentResults.xlsx"
)

// Columns is the header row, in order.
var Columns = []string{"Question", "Correct Path", "User Path", "Attempts", "Time Taken (s)"}

var ErrBadSheet = errors.New("unexpected sheet layout")

// Row is one exported question.
type Row struct {
	Question    int
	CorrectPath string
	UserPath    string
	Attempts    int
	Seconds     float64
}

// Rows converts quiz results to export rows.
func Rows(results []quiz.Result) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, Row{
			Question:    r.Question,
			CorrectPath: r.CorrectPath,
			UserPath:    r.UserPath,
			Attempts:    r.Attempts,
			Seconds:     r.Seconds(),
		})
	}
	return rows
}

// WriteXLSX writes results to a new workbook at path, replacing any existing file.
func WriteXLSX(path string, results []quiz.Result) error {
	return WriteRows(path, Rows(results))
}

// WriteRows writes rows to a new workbook at path.
func WriteRows(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Question, r.CorrectPath, r.UserPath, r.Attempts, r.Seconds}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ReadXLSX reads the rows written by WriteXLSX.
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", SheetName, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrBadSheet)
	}
	for i, c := range Columns {
		if i >= len(raw[0]) || raw[0][i] != c {
			return nil, fmt.Errorf("%w: column %d is not %q", ErrBadSheet, i+1, c)
		}
	}

	rows := make([]Row, 0, len(raw)-1)
	for n, cells := range raw[1:] {
		r, err := parseRow(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func parseRow(cells []string) (Row, error) {
	if len(cells) < len(Columns) {
		return Row{}, fmt.Errorf("%w: %d cells, want %d", ErrBadSheet, len(cells), len(Columns))
	}
	question, err := strconv.Atoi(cells[0])
	if err != nil {
		return Row{}, fmt.Errorf("question: %w", err)
	}
	attempts, err := strconv.Atoi(cells[3])
	if err != nil {
		return Row{}, fmt.Errorf("attempts: %w", err)
	}
	seconds, err := strconv.ParseFloat(cells[4], 64)
	if err != nil {
		return Row{}, fmt.Errorf("time taken: %w", err)
	}
	return Row{
		Question:    question,
		CorrectPath: cells[1],
		UserPath:    cells[2],
		Attempts:    attempts,
		Seconds:     seconds,
	}, nil
}
