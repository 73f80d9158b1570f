package dataprocessing

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "tmanalyzer/internal/errors"
)

// Sheet is the raw content of one worksheet below its header row.
type Sheet struct {
	Name   string
	Header []string
	// HeaderRow is the 1-based worksheet row of the header.
	HeaderRow int
	Rows      []SheetRow
}

// SheetRow is one non-empty data row with its 1-based worksheet row number.
type SheetRow struct {
	Number int
	Cells  []string
}

// ReadSheet opens a workbook and returns the preferred sheet, or the first
// sheet holding data when preferred is empty or missing. The header is the
// first row with at least two non-empty cells; blank rows below it are dropped
// and every row is padded to the header width.
func ReadSheet(path, preferred string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("file", path)
	}
	defer f.Close()

	name, rows, err := selectSheet(f, preferred)
	if err != nil {
		return nil, err
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("no header row in sheet %q", name), nil).
			WithContext("file", path)
	}

	header := make([]string, len(rows[headerIdx]))
	for i, cell := range rows[headerIdx] {
		header[i] = strings.TrimSpace(cell)
	}

	sheet := &Sheet{
		Name:      name,
		Header:    header,
		HeaderRow: headerIdx + 1,
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		if countNonEmpty(rows[i]) == 0 {
			continue
		}
		cells := make([]string, len(header))
		copy(cells, rows[i])
		sheet.Rows = append(sheet.Rows, SheetRow{Number: i + 1, Cells: cells})
	}

	return sheet, nil
}

// selectSheet returns the rows of the sheet to analyse
func selectSheet(f *excelize.File, preferred string) (string, [][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, apperrors.NewParsingError("workbook has no sheets", nil)
	}

	if preferred != "" {
		if idx, err := f.GetSheetIndex(preferred); err == nil && idx >= 0 {
			rows, err := f.GetRows(preferred)
			if err != nil {
				return "", nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", preferred), err)
			}
			return preferred, rows, nil
		}
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", name), err)
		}
		if len(rows) > 0 {
			return name, rows, nil
		}
	}

	return "", nil, apperrors.NewParsingError("workbook contains no data", nil)
}

func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if countNonEmpty(row) >= 2 {
			return i
		}
	}
	return -1
}

func countNonEmpty(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
