package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"tmanalyzer/internal/files"
)

// PreviewRows is the number of leading data rows kept by inspection.
const PreviewRows = 5

// Cell kinds inferred by inspection.
const (
	KindEmpty  = "empty"
	KindDate   = "date"
	KindNumber = "number"
	KindText   = "text"
	KindMixed  = "mixed"
)

// ColumnProfile describes one column of an inspected sheet.
type ColumnProfile struct {
	Header   string
	Matched  Column
	NonEmpty int
	Kind     string
}

// FileReport is the structure and preview of one spreadsheet.
type FileReport struct {
	Name      string
	Country   string
	Sheet     string
	HeaderRow int
	Rows      int
	Columns   []ColumnProfile
	Preview   [][]string
}

// Inspector reports the layout of input files without normalizing them.
type Inspector struct {
	cfg       LoaderConfig
	discovery *files.Discovery
	resolver  *CountryResolver
	logger    *slog.Logger
}

// NewInspector creates an inspector sharing the loader configuration.
func NewInspector(cfg LoaderConfig, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "*.xlsx"
	}
	return &Inspector{
		cfg:       cfg,
		discovery: files.NewDiscovery(logger),
		resolver:  NewCountryResolver(cfg.Aliases),
		logger:    logger,
	}
}

// Inspect reports every matching file in dir. Unreadable files are returned
// as failures next to the reports.
func (in *Inspector) Inspect(ctx context.Context, dir string) ([]FileReport, []FileFailure, error) {
	candidates, err := in.discovery.FindSpreadsheets(dir, in.cfg.Pattern)
	if err != nil {
		return nil, nil, err
	}

	var (
		reports  []FileReport
		failures []FileFailure
	)
	for _, file := range candidates {
		if err := ctx.Err(); err != nil {
			return reports, failures, err
		}

		sheet, err := ReadSheet(file.Path, in.cfg.SheetName)
		if err != nil {
			in.logger.WarnContext(ctx, "Cannot inspect file",
				slog.String("file", file.Name),
				slog.String("error", err.Error()))
			failures = append(failures, FileFailure{Name: file.Name, Path: file.Path, Reason: FailureRead, Err: err})
			continue
		}

		report := ProfileSheet(sheet)
		report.Name = file.Name
		if country, err := in.resolver.Resolve(file.Name); err == nil {
			report.Country = country
		}
		reports = append(reports, report)

		in.logger.InfoContext(ctx, "Inspected file",
			slog.String("file", file.Name),
			slog.String("sheet", sheet.Name),
			slog.Int("rows", report.Rows),
			slog.Int("columns", len(report.Columns)))
	}

	return reports, failures, nil
}

// ProfileSheet computes column profiles and the preview of a sheet.
func ProfileSheet(sheet *Sheet) FileReport {
	report := FileReport{
		Sheet:     sheet.Name,
		HeaderRow: sheet.HeaderRow,
		Rows:      len(sheet.Rows),
	}

	for i, header := range sheet.Header {
		profile := ColumnProfile{Header: header, Matched: MatchColumn(header)}
		kinds := make(map[string]int)
		for _, row := range sheet.Rows {
			value := strings.TrimSpace(row.Cells[i])
			if value == "" {
				continue
			}
			profile.NonEmpty++
			kinds[cellKind(value)]++
		}
		profile.Kind = dominantKind(kinds, profile.NonEmpty)
		report.Columns = append(report.Columns, profile)
	}

	for i := 0; i < len(sheet.Rows) && i < PreviewRows; i++ {
		report.Preview = append(report.Preview, sheet.Rows[i].Cells)
	}

	return report
}

func cellKind(value string) string {
	// Eight-digit numbers are read as YYYYMMDD before being treated as numbers.
	if len(value) == 8 && ParseFilingDate(value) != nil {
		return KindDate
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64); err == nil {
		return KindNumber
	}
	if ParseFilingDate(value) != nil {
		return KindDate
	}
	return KindText
}

// dominantKind returns the single kind of all non-empty cells, or mixed.
func dominantKind(kinds map[string]int, nonEmpty int) string {
	if nonEmpty == 0 {
		return KindEmpty
	}
	for kind, n := range kinds {
		if n == nonEmpty {
			return kind
		}
	}
	return KindMixed
}
