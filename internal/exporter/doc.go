// Package exporter writes the consolidated filing table and the analysis
// results to machine-readable files.
//
// CSVWriter is the low-level writer with UTF-8 BOM support so spreadsheet
// applications render Hangul correctly. FilingExporter streams the combined
// table through it. WorkbookExporter writes every result table into one
// .xlsx file with excelize, and SQLiteExporter stores the filings in a
// SQLite database for ad hoc queries.
//
// Example usage:
//
//	csvExporter := exporter.NewFilingExporter(paths)
//	rows, err := csvExporter.ExportCombined(table, config.CombinedCSVFile)
//
//	db := exporter.NewSQLiteExporter(logger)
//	rows, err = db.Export(ctx, table, paths.OutputPath(config.FilingsSQLiteDB))
package exporter
