package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"tmanalyzer/internal/dataprocessing"
)

// WriteInspection prints the structure and first rows of every inspected file.
func WriteInspection(w io.Writer, reports []dataprocessing.FileReport, failures []dataprocessing.FileFailure) error {
	s := &sectionWriter{w: bufio.NewWriter(w)}

	if len(reports) == 0 && len(failures) == 0 {
		s.warn("검사할 파일이 없습니다.")
		return s.flush()
	}

	for _, rep := range reports {
		s.printf("\n%s\n", strings.Repeat("=", 60))
		s.printf("파일: %s\n", rep.Name)
		if rep.Country != "" {
			s.printf("국가: %s\n", rep.Country)
		} else {
			s.warn("파일 이름에서 국가를 알 수 없습니다.")
		}
		s.printf("시트: %s (헤더 %d행)\n", rep.Sheet, rep.HeaderRow)
		s.printf("크기: %d행 x %d열\n\n", rep.Rows, len(rep.Columns))

		rows := make([][]string, len(rep.Columns))
		for i, col := range rep.Columns {
			rows[i] = []string{col.Header, col.Matched.String(), itoa(col.NonEmpty), col.Kind}
		}
		s.table([]string{"컬럼", "인식", "값 있음", "유형"}, rows)

		if len(rep.Preview) > 0 {
			s.printf("\n처음 %d행\n", len(rep.Preview))
			header := make([]string, len(rep.Columns))
			for i, col := range rep.Columns {
				header[i] = col.Header
			}
			preview := make([][]string, len(rep.Preview))
			for i, row := range rep.Preview {
				preview[i] = make([]string, len(row))
				for j, cell := range row {
					preview[i][j] = clip(cell, 30)
				}
			}
			s.table(header, preview)
		}
	}

	if len(failures) > 0 {
		s.printf("\n")
	}
	for _, f := range failures {
		s.warn(fmt.Sprintf("%s: %s (%v)", f.Name, f.Reason, f.Err))
	}

	return s.flush()
}

// clip shortens long cell values for the preview table.
func clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
