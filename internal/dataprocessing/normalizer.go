package dataprocessing

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tmanalyzer/pkg/contracts/domain"
)

// NormalizeStats summarises what normalization had to repair.
type NormalizeStats struct {
	Rows             int `json:"rows"`
	NullDates        int `json:"null_dates"`
	PlaceholderNames int `json:"placeholder_names"`
	FallbackClasses  int `json:"fallback_classes"`
}

// Normalizer turns loaded sheets into a consolidated FilingTable.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil logger uses slog.Default.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts every row of every loaded file, preserving file and row
// order. Unparseable fields become null or fallback values; rows are never dropped.
func (n *Normalizer) Normalize(ctx context.Context, result *LoadResult) (*domain.FilingTable, NormalizeStats) {
	var stats NormalizeStats
	table := domain.NewFilingTable(make([]domain.FilingRecord, 0, result.TotalRows()))
	if result == nil {
		return table, stats
	}

	for _, file := range result.Files {
		for _, row := range file.Sheet.Rows {
			record := normalizeRow(file, row)
			if !record.HasDate() {
				stats.NullDates++
			}
			if record.Name == domain.NamePlaceholder {
				stats.PlaceholderNames++
			}
			if record.ClassCode == 0 {
				stats.FallbackClasses++
			}
			table.Append(record)
		}
	}
	stats.Rows = table.Len()

	n.logger.InfoContext(ctx, "Normalization complete",
		slog.Int("rows", stats.Rows),
		slog.Int("null_dates", stats.NullDates),
		slog.Int("placeholder_names", stats.PlaceholderNames),
		slog.Int("fallback_classes", stats.FallbackClasses))

	return table, stats
}

func normalizeRow(file LoadedFile, row SheetRow) domain.FilingRecord {
	cols := file.Columns
	rawClass := cols.Value(row.Cells, ColumnClass)
	code, _ := ExtractClassCode(rawClass)

	name := cols.Value(row.Cells, ColumnName)
	if name == "" {
		name = domain.NamePlaceholder
	}

	return domain.FilingRecord{
		Country:    file.Country,
		FilingDate: ParseFilingDate(cols.Value(row.Cells, ColumnDate)),
		ClassCode:  code,
		RawClass:   rawClass,
		Name:       name,
		Goods:      cols.Value(row.Cells, ColumnGoods),
		Group:      cols.Value(row.Cells, ColumnGroup),
		SourceFile: file.Name,
		SourceRow:  row.Number,
	}
}

var firstDigits = regexp.MustCompile(`\d+`)

// ExtractClassCode reads the primary class from a raw class cell: the first
// run of digits before any "//". Cells without digits map to 0 and the
// fallback label.
func ExtractClassCode(raw string) (int, string) {
	primary, _, _ := strings.Cut(raw, "//")
	digits := firstDigits.FindString(primary)
	if digits == "" {
		return 0, domain.FallbackClassLabel
	}
	code, err := strconv.Atoi(digits)
	if err != nil || code <= 0 {
		return 0, domain.FallbackClassLabel
	}
	return code, domain.ClassKey(code)
}

// dateLayouts are tried in order. Day-first layouts come after month-first ones.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006.1.2",
	"2006-1-2",
	"2006/1/2",
	"2006. 1. 2",
	"2006년 1월 2일",
	"01/02/2006",
	"1/2/2006",
	"1/2/06 15:04",
	"01-02-06",
	"02.01.2006",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// Excel serial days from 1910-01-01 to 9999-12-31. Smaller integers are
// class codes or counts that leaked into the date column.
const (
	minExcelSerial = 3653
	maxExcelSerial = 2958465

	minBareYear = 1900
	maxBareYear = 2100
)

// ParseFilingDate parses the many date spellings found in filing exports,
// including bare years (read as January 1) and Excel serial day numbers.
// Unparseable input returns nil.
func ParseFilingDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil && year >= minBareYear && year <= maxBareYear {
			t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil &&
		serial >= minExcelSerial && serial <= maxExcelSerial {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return &t
		}
	}

	return nil
}
