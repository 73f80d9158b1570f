package exporter

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmanalyzer/internal/config"
)

func TestSQLiteExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FilingsSQLiteDB)
	exp := NewSQLiteExporter(nil)

	n, err := exp.Export(context.Background(), sampleTable(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// a second export replaces the database instead of appending
	n, err = exp.Export(context.Background(), sampleTable(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM filings`).Scan(&count))
	assert.Equal(t, 2, count)

	var nullDates int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM filings WHERE filing_date IS NULL`).Scan(&nullDates))
	assert.Equal(t, 1, nullDates)

	var country, classKey string
	var year int
	require.NoError(t, db.QueryRow(
		`SELECT country, class_key, year FROM filings WHERE year IS NOT NULL`).Scan(&country, &classKey, &year))
	assert.Equal(t, "한국", country)
	assert.Equal(t, "35", classKey)
	assert.Equal(t, 2021, year)
}

func TestSQLiteExporter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSQLiteExporter(nil).Export(ctx, sampleTable(), filepath.Join(t.TempDir(), "x.sqlite"))
	assert.Error(t, err)
}
