package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"tmanalyzer/pkg/contracts/domain"
)

const filingsTable = "filings"

var filingsSchema = []string{
	`DROP TABLE IF EXISTS "filings"`,
	`CREATE TABLE "filings" (
		"id" INTEGER PRIMARY KEY,
		"country" TEXT NOT NULL,
		"filing_date" TEXT,
		"year" INTEGER,
		"month" INTEGER,
		"class_code" INTEGER NOT NULL,
		"class_key" TEXT NOT NULL,
		"raw_class" TEXT,
		"name" TEXT NOT NULL,
		"name_length" INTEGER NOT NULL,
		"goods" TEXT,
		"goods_count" INTEGER NOT NULL,
		"similarity_group" TEXT,
		"source_file" TEXT,
		"source_row" INTEGER
	)`,
}

var filingsIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_filings_country ON filings(country)`,
	`CREATE INDEX IF NOT EXISTS idx_filings_year ON filings(year)`,
	`CREATE INDEX IF NOT EXISTS idx_filings_class ON filings(class_key)`,
}

// SQLiteExporter stores the consolidated filing table in a SQLite database
// so it can be queried ad hoc after a run.
type SQLiteExporter struct {
	logger *slog.Logger
}

// NewSQLiteExporter creates a SQLite exporter
func NewSQLiteExporter(logger *slog.Logger) *SQLiteExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteExporter{logger: logger}
}

// Export replaces the database at path with the rows of table.
func (e *SQLiteExporter) Export(ctx context.Context, table *domain.FilingTable, path string) (int, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("failed to remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	for _, stmt := range filingsSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	n, err := insertFilings(ctx, tx, table)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit filings: %w", err)
	}

	for _, idx := range filingsIndexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return n, fmt.Errorf("failed to create index: %w", err)
		}
	}

	e.logger.InfoContext(ctx, "Filings stored in SQLite",
		slog.String("file_path", path),
		slog.String("table", filingsTable),
		slog.Int("rows", n))

	return n, nil
}

func insertFilings(ctx context.Context, tx *sql.Tx, table *domain.FilingTable) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO "filings" (
		"country", "filing_date", "year", "month", "class_code", "class_key", "raw_class",
		"name", "name_length", "goods", "goods_count", "similarity_group", "source_file", "source_row"
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	if table == nil {
		return 0, nil
	}

	for i, r := range table.Records {
		var date, year, month interface{}
		if r.FilingDate != nil {
			date = formatDate(r.FilingDate)
			y, _ := r.Year()
			m, _ := r.Month()
			year, month = y, m
		}

		if _, err := stmt.ExecContext(ctx,
			r.Country, date, year, month, r.ClassCode, r.ClassKey(), r.RawClass,
			r.Name, r.NameLength(), r.Goods, r.GoodsCount(), r.Group, r.SourceFile, r.SourceRow,
		); err != nil {
			return i, fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	return len(table.Records), nil
}
