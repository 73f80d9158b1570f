package exporter

import (
	"fmt"
	"log/slog"

	"tmanalyzer/internal/config"
	"tmanalyzer/pkg/contracts/domain"
)

// FilingHeaders are the columns of every tabular filing export.
var FilingHeaders = []string{
	"country", "filing_date", "year", "month", "class_code", "class_key",
	"raw_class", "name", "name_length", "goods", "goods_count", "similarity_group",
	"source_file", "source_row",
}

// FilingExporter writes the consolidated filing table as CSV
type FilingExporter struct {
	csvWriter *CSVWriter
}

// NewFilingExporter creates a new filing table exporter
func NewFilingExporter(paths *config.Paths) *FilingExporter {
	return &FilingExporter{csvWriter: NewCSVWriter(paths)}
}

// ExportCombined streams every row of the table, in table order, to filePath.
func (e *FilingExporter) ExportCombined(table *domain.FilingTable, filePath string) (int, error) {
	stream, err := e.csvWriter.CreateStreamWriter(filePath, FilingHeaders)
	if err != nil {
		return 0, fmt.Errorf("failed to create combined export: %w", err)
	}

	if table != nil {
		for i, record := range table.Records {
			if err := stream.WriteRecord(filingRow(record)); err != nil {
				stream.Close()
				return i, fmt.Errorf("failed to write row %d: %w", i, err)
			}
		}
	}

	if err := stream.Close(); err != nil {
		return stream.Rows(), fmt.Errorf("failed to close combined export: %w", err)
	}

	slog.Info("Combined filings exported",
		slog.String("file_path", filePath),
		slog.Int("rows", stream.Rows()))

	return stream.Rows(), nil
}

// filingRow converts a record to its export columns
func filingRow(r domain.FilingRecord) []string {
	year, month := "", ""
	if y, ok := r.Year(); ok {
		year = formatInt(y)
	}
	if m, ok := r.Month(); ok {
		month = formatInt(m)
	}

	return []string{
		r.Country,
		formatDate(r.FilingDate),
		year,
		month,
		formatInt(r.ClassCode),
		r.ClassKey(),
		r.RawClass,
		r.Name,
		formatInt(r.NameLength()),
		r.Goods,
		formatInt(r.GoodsCount()),
		r.Group,
		r.SourceFile,
		formatInt(r.SourceRow),
	}
}
