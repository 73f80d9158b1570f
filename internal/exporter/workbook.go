package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"tmanalyzer/internal/analytics"
	"tmanalyzer/internal/files"
)

// Sheet is one result table of the workbook export.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// WorkbookExporter writes analysis result tables into a single .xlsx file,
// one sheet per table.
type WorkbookExporter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(manager *files.Manager, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	return &WorkbookExporter{files: manager, logger: logger}
}

// Export writes the sheets of whichever results are non-nil to path.
func (e *WorkbookExporter) Export(path string, basic *analytics.BasicResult, market *analytics.MarketResult) error {
	var sheets []Sheet
	if basic != nil {
		sheets = append(sheets, BasicSheets(basic)...)
	}
	if market != nil {
		sheets = append(sheets, MarketSheets(market)...)
	}
	sheets = uniqueSheets(sheets)
	if len(sheets) == 0 {
		return fmt.Errorf("no result tables to export")
	}

	err := e.files.WriteFile(path, func(w io.Writer) error {
		return writeWorkbook(w, sheets)
	})
	if err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}

	e.logger.Info("Result workbook exported",
		slog.String("file_path", path),
		slog.Int("sheets", len(sheets)))
	return nil
}

// uniqueSheets keeps the first sheet of each name; both runs share the
// growth and seasonality tables.
func uniqueSheets(sheets []Sheet) []Sheet {
	seen := make(map[string]bool, len(sheets))
	out := sheets[:0]
	for _, s := range sheets {
		if !seen[s.Name] {
			seen[s.Name] = true
			out = append(out, s)
		}
	}
	return out
}

func writeWorkbook(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		header := make([]interface{}, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", sheet.Name, err)
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header of %s: %w", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", r+2, sheet.Name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// BasicSheets converts the basic run results into workbook tables.
func BasicSheets(r *analytics.BasicResult) []Sheet {
	yearly := Sheet{Name: "YearlyCounts", Header: []string{"country", "year", "count"}}
	for _, cy := range r.TimeSeries.TopYears {
		for _, y := range cy.Years {
			yearly.Rows = append(yearly.Rows, []interface{}{cy.Country, y.Year, y.Count})
		}
	}

	cagr := Sheet{Name: "CountryCAGR", Header: []string{"country", "start_year", "end_year", "start_count", "end_count", "cagr_pct"}}
	for _, c := range r.TimeSeries.CAGR {
		cagr.Rows = append(cagr.Rows, []interface{}{c.Country, c.StartYear, c.EndYear, c.StartCount, c.EndCount, round2(c.CAGR * 100)})
	}

	shares := Sheet{Name: "ClassShares", Header: []string{"country", "class", "description", "count", "share_pct"}}
	for _, cc := range r.Categories {
		for _, s := range cc.Shares {
			shares.Rows = append(shares.Rows, []interface{}{cc.Country, s.ClassKey, s.Description, s.Count, round2(s.Share)})
		}
	}

	diversity := Sheet{Name: "Diversity", Header: []string{"country", "distinct_classes", "classes"}}
	for _, d := range r.Comparison.Diversity {
		diversity.Rows = append(diversity.Rows, []interface{}{d.Country, d.Count, joinLabels(d.Labels)})
	}

	goods := Sheet{Name: "GoodsPerFiling", Header: []string{"country", "filings", "mean_goods"}}
	for _, g := range r.Comparison.GoodsAverages {
		goods.Rows = append(goods.Rows, []interface{}{g.Country, g.Filings, round2(g.Mean)})
	}

	names := Sheet{Name: "NameLengths", Header: []string{"country", "count", "mean", "median", "min", "max"}}
	for _, n := range r.Text.NameLengths {
		names.Rows = append(names.Rows, []interface{}{n.Country, n.Count, round2(n.Mean), round2(n.Median), n.Min, n.Max})
	}

	return []Sheet{
		yearly, cagr, shares, diversity, goods, names,
		termSheet("NameTokens", r.Text.NameTokens),
		termSheet("GoodsKeywords", r.Text.GoodsKeywords),
		growthSheet(r.Growth),
		seasonalitySheet(r.Seasonality),
	}
}

// MarketSheets converts the market run results into workbook tables.
func MarketSheets(r *analytics.MarketResult) []Sheet {
	global := Sheet{Name: "GlobalTopClasses", Header: []string{"rank", "class", "description", "count"}}
	for i, c := range r.GlobalTopClasses {
		global.Rows = append(global.Rows, []interface{}{i + 1, c.ClassKey, c.Description, c.Count})
	}

	perCountry := Sheet{Name: "CountryTopClasses", Header: []string{"country", "rank", "class", "description", "count"}}
	for _, cc := range r.CountryTopClasses {
		for i, c := range cc.Classes {
			perCountry.Rows = append(perCountry.Rows, []interface{}{cc.Country, i + 1, c.ClassKey, c.Description, c.Count})
		}
	}

	groups := Sheet{Name: "SimilarityGroups", Header: []string{"country", "group", "count"}}
	for _, g := range r.SimilarityGroups.Groups {
		groups.Rows = append(groups.Rows, []interface{}{r.SimilarityGroups.Country, g.Term, g.Count})
	}

	trends := Sheet{Name: "RecentTrends", Header: append([]string{"year"}, r.Trends.Countries...)}
	for i, year := range r.Trends.Years {
		row := []interface{}{year}
		for _, n := range r.Trends.Counts[i] {
			row = append(row, n)
		}
		trends.Rows = append(trends.Rows, row)
	}

	return []Sheet{global, perCountry, groups, trends, growthSheet(r.Growth), seasonalitySheet(r.Seasonality)}
}

func termSheet(name string, terms []analytics.CountryTerms) Sheet {
	sheet := Sheet{Name: name, Header: []string{"country", "rank", "term", "count"}}
	for _, ct := range terms {
		for i, t := range ct.Terms {
			sheet.Rows = append(sheet.Rows, []interface{}{ct.Country, i + 1, t.Term, t.Count})
		}
	}
	return sheet
}

func growthSheet(g analytics.GrowthResult) Sheet {
	sheet := Sheet{Name: "ClassGrowth", Header: []string{"class", "description", "start_year", "end_year", "start_count", "end_count", "cagr_pct"}}
	for _, c := range g.Classes {
		sheet.Rows = append(sheet.Rows, []interface{}{c.ClassKey, c.Description, g.StartYear, g.EndYear, c.StartCount, c.EndCount, round2(c.CAGR * 100)})
	}
	return sheet
}

func seasonalitySheet(s analytics.SeasonalityResult) Sheet {
	sheet := Sheet{Name: "Seasonality", Header: []string{"month", "count"}}
	for m := 1; m <= 12; m++ {
		sheet.Rows = append(sheet.Rows, []interface{}{m, s.Count(m)})
	}
	return sheet
}
