package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/pathquiz/internal/jsontree"
	"github.com/abhisek/pathquiz/internal/quiz"
)

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	results := []quiz.Result{
		{Question: 1, CorrectPath: "alpha", UserPath: "alpha", Attempts: 1, Elapsed: 2500 * time.Millisecond, Mode: jsontree.ModeIndented},
		{Question: 2, CorrectPath: "gamma.delta", UserPath: "gamma.delta", Attempts: 3, Elapsed: 10 * time.Second, Mode: jsontree.ModeCompact},
	}

	require.NoError(t, WriteXLSX(path, results))

	rows, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Question: 1, CorrectPath: "alpha", UserPath: "alpha", Attempts: 1, Seconds: 2.5},
		{Question: 2, CorrectPath: "gamma.delta", UserPath: "gamma.delta", Attempts: 3, Seconds: 10.0},
	}, rows)
}

func TestWriteXLSX_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	raw, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, Columns, raw[0])

	rows, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteXLSX_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.xlsx")
	assert.Error(t, WriteXLSX(path, nil))
}

func TestReadXLSX_RejectsForeignSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetName))
	require.NoError(t, f.SetCellValue(SheetName, "A1", "Something"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadXLSX(path)
	assert.ErrorIs(t, err, ErrBadSheet)
}
