package dataprocessing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/shared/testutil"
	"tmanalyzer/pkg/contracts/domain"
)

var testAliases = map[string]string{"KR": "한국", "US": "미국"}

func writeTwoCountryFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFilingWorkbook(t, dir, "KR_DATA.xlsx",
		testutil.FilingRow(1, "2021-03-04", "푸른하늘", "35//42", "광고업, 경영자문업", "S0101|G4503"),
		testutil.FilingRow(2, "2022.05.10", "", "9", "컴퓨터 소프트웨어", "G390802"),
		testutil.FilingRow(3, "2020/12/31", "HANA", "25", "Shoes, Bags, Shoes", ""),
	)
	testutil.WriteFilingWorkbook(t, dir, "US_DATA.xlsx",
		testutil.FilingRow(4, "2021-01-15", "BLUE SKY", "9", "software", ""),
		testutil.FilingRow(5, "unknown", "RED MOON", "기타정보", "t-shirts", ""),
		testutil.FilingRow(6, "20230102", "GREEN LEAF", "30", "coffee//tea", ""),
	)
	return dir
}

func TestLoader_LoadAndNormalize_TwoCountries(t *testing.T) {
	dir := writeTwoCountryFixture(t)
	logger, handler := testutil.NewTestLogger(t)

	result, err := NewLoader(LoaderConfig{Aliases: testAliases}, logger).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 6, result.TotalRows())
	assert.Equal(t, []string{"한국", "미국"}, result.Countries())

	table, stats := NewNormalizer(logger).Normalize(context.Background(), result)
	assert.Equal(t, 6, table.Len(), "row count is preserved")
	assert.Equal(t, 1, stats.NullDates)
	assert.Equal(t, 1, table.NullDates())
	assert.Equal(t, 1, stats.PlaceholderNames)
	assert.Equal(t, 1, stats.FallbackClasses)
	assert.Equal(t, []string{"한국", "미국"}, table.Countries())

	// in-file order and file order are preserved
	assert.Equal(t, "푸른하늘", table.Records[0].Name)
	assert.Equal(t, domain.NamePlaceholder, table.Records[1].Name)
	assert.Equal(t, "GREEN LEAF", table.Records[5].Name)
	assert.Equal(t, 2, table.Records[0].SourceRow)

	for _, r := range table.Records[:3] {
		assert.Equal(t, "한국", r.Country)
	}
	for _, r := range table.Records[3:] {
		assert.Equal(t, "미국", r.Country)
	}

	assert.True(t, handler.ContainsMessage("Load complete"))
	testutil.AssertNoErrors(t, handler)
}

func TestLoader_Load_SkipsBadFiles(t *testing.T) {
	dir := writeTwoCountryFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "JP_DATA.xlsx"), []byte("not a zip archive"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$KR_DATA.xlsx"), []byte("lock"), 0644))
	testutil.WriteFilingWorkbook(t, dir, "DATA.xlsx", testutil.FilingRow(9, "2021-01-01", "X", "1", "", ""))
	testutil.WriteWorkbook(t, dir, "CN_DATA.xlsx", "Sheet1", [][]interface{}{
		{"번호", "비고"},
		{"1", "x"},
	})

	logger, handler := testutil.NewTestLogger(t)
	result, err := NewLoader(LoaderConfig{Aliases: testAliases}, logger).Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 6, result.TotalRows(), "failed files contribute no rows")

	reasons := make(map[string]string)
	for _, f := range result.Failures {
		reasons[f.Name] = f.Reason
		assert.Error(t, f.Err)
	}
	assert.Equal(t, map[string]string{
		"CN_DATA.xlsx": FailureColumns,
		"DATA.xlsx":    FailureCountry,
		"JP_DATA.xlsx": FailureRead,
	}, reasons)
	assert.True(t, handler.ContainsMessage("Skipping file"))
}

func TestLoader_Load_EmptyDirectory(t *testing.T) {
	result, err := NewLoader(LoaderConfig{}, nil).Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, result.TotalRows())
	assert.Empty(t, result.Files)

	table, stats := NewNormalizer(nil).Normalize(context.Background(), result)
	assert.True(t, table.IsEmpty())
	assert.Zero(t, stats.Rows)
}

func TestLoader_Load_MissingDirectory(t *testing.T) {
	_, err := NewLoader(LoaderConfig{}, nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, apperrors.ErrDataDirMissing))
}

func TestLoader_Load_Cancelled(t *testing.T) {
	dir := writeTwoCountryFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewLoader(LoaderConfig{Aliases: testAliases}, nil).Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Files)
}

func TestReadSheet_HeaderDetectionAndPreferredSheet(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWorkbook(t, dir, "KR_DATA.xlsx", "Filings", [][]interface{}{
		{"상표 출원 목록"},
		{},
		{"출원일자", "상표명칭", "상품분류"},
		{"2021-01-01", "A", "35"},
		{},
		{"2021-02-01", "B"},
	})

	sheet, err := ReadSheet(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Filings", sheet.Name)
	assert.Equal(t, 3, sheet.HeaderRow)
	require.Len(t, sheet.Rows, 2, "blank rows are dropped")
	assert.Equal(t, 4, sheet.Rows[0].Number)
	assert.Equal(t, 6, sheet.Rows[1].Number)
	assert.Equal(t, []string{"2021-02-01", "B", ""}, sheet.Rows[1].Cells, "short rows are padded")

	sheet, err = ReadSheet(path, "Missing")
	require.NoError(t, err)
	assert.Equal(t, "Filings", sheet.Name, "unknown preferred sheet falls back to the first with data")
}

func TestReadSheet_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSheet(filepath.Join(dir, "absent.xlsx"), "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	path := testutil.WriteWorkbook(t, dir, "ONE.xlsx", "Sheet1", [][]interface{}{{"only one cell"}})
	_, err = ReadSheet(path, "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing), "no row with two cells")
}
