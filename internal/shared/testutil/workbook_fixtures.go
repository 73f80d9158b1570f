package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// FilingHeader is the header row used by the Korean filing exports.
var FilingHeader = []interface{}{"출원번호", "출원일자", "상표명칭", "상품분류", "지정상품", "유사군코드"}

// WriteWorkbook creates dir/name with rows on a single sheet and returns its path.
// The first row is written as-is; callers usually pass FilingHeader first.
func WriteWorkbook(t *testing.T, dir, name, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

// WriteFilingWorkbook writes a workbook with FilingHeader followed by rows.
func WriteFilingWorkbook(t *testing.T, dir, name string, rows ...[]interface{}) string {
	t.Helper()
	all := make([][]interface{}, 0, len(rows)+1)
	all = append(all, FilingHeader)
	all = append(all, rows...)
	return WriteWorkbook(t, dir, name, "Sheet1", all)
}

// FilingRow builds a row matching FilingHeader.
func FilingRow(seq int, date, name, class, goods, group string) []interface{} {
	return []interface{}{fmt.Sprintf("40-%07d", seq), date, name, class, goods, group}
}
