package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmanalyzer/internal/config"
	apperrors "tmanalyzer/internal/errors"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func stepIDs(state *State) []string {
	ids := make([]string, 0, len(state.Steps))
	for _, st := range state.Steps {
		ids = append(ids, st.ID)
	}
	return ids
}

func TestService_RunAll(t *testing.T) {
	svc, handler := newTestService(t, writeFilings(t))

	state, err := svc.Run(context.Background(), KindAll)
	require.NoError(t, err)
	assert.False(t, state.NoData)

	assert.Equal(t, []string{
		StepLoad, StepNormalize, StepAnalyzeBasic, StepAnalyzeMarket,
		StepReportBasic, StepReportMarket, StepCharts, StepExport,
	}, stepIDs(state))
	for _, st := range state.Steps {
		assert.Equal(t, StepStatusCompleted, st.Status, st.ID)
	}

	assert.Equal(t, 26, state.Table.Len())
	assert.Equal(t, 1, state.Stats.NullDates)
	assert.Equal(t, []string{"한국", "미국"}, state.Table.Countries())

	paths := state.Paths
	basic := readFile(t, paths.BasicPath(config.DefaultReportFile))
	assert.Contains(t, basic, "상표 출원 기초 통계 분석")
	assert.Contains(t, basic, "한국")
	assert.Contains(t, basic, "미국")

	market := readFile(t, paths.AnalysisPath(config.DefaultMarketReportFile))
	assert.Contains(t, market, "상표 출원 시장 동향 분석")
	assert.Contains(t, market, "요약 인사이트")

	// no class reaches the end-year volume, so the growth chart is left out
	assert.Equal(t, []string{config.ChartPromisingFields}, state.ChartsSkipped)
	for _, chart := range []string{
		config.ChartGlobalTopClasses,
		config.ChartCountryTopClasses,
		config.ChartKoreaTopGroups,
		config.ChartTrendsByCountry,
		config.ChartSeasonality,
	} {
		assert.FileExists(t, paths.AnalysisPath(chart))
	}
	assert.NoFileExists(t, paths.AnalysisPath(config.ChartPromisingFields))

	assert.FileExists(t, paths.OutputPath(config.CombinedCSVFile))
	assert.FileExists(t, paths.OutputPath(config.ResultsWorkbook))
	assert.FileExists(t, paths.OutputPath(config.FilingsSQLiteDB))
	assert.Len(t, state.Outputs, 10)

	assert.True(t, handler.ContainsAttr("status", "completed"))
	assert.True(t, handler.ContainsMessage("Chart skipped, no data"))
}

func TestService_RunBasic(t *testing.T) {
	svc, _ := newTestService(t, writeFilings(t))
	svc.cfg.Output.ExportWorkbook = false
	svc.cfg.Output.ExportSQLite = false

	state, err := svc.Run(context.Background(), KindBasic)
	require.NoError(t, err)

	assert.Equal(t, []string{
		StepLoad, StepNormalize, StepAnalyzeBasic, StepReportBasic, StepExport,
	}, stepIDs(state))
	assert.NotNil(t, state.Basic)
	assert.Nil(t, state.Market)

	assert.FileExists(t, state.Paths.BasicPath(config.DefaultReportFile))
	assert.NoFileExists(t, state.Paths.AnalysisPath(config.DefaultMarketReportFile))
	assert.NoFileExists(t, state.Paths.OutputPath(config.ResultsWorkbook))
	assert.Equal(t, []string{
		state.Paths.BasicPath(config.DefaultReportFile),
		state.Paths.OutputPath(config.CombinedCSVFile),
	}, state.Outputs)
}

func TestService_RunNoData(t *testing.T) {
	svc, handler := newTestService(t, t.TempDir())

	state, err := svc.Run(context.Background(), KindAll)
	require.ErrorIs(t, err, apperrors.ErrNoData)
	assert.Equal(t, 0, apperrors.ExitCode(err))
	assert.True(t, state.NoData)

	basic := readFile(t, state.Paths.BasicPath(config.DefaultReportFile))
	assert.Contains(t, basic, "상표 출원 기초 통계 분석")
	assert.Contains(t, basic, "분석할 데이터가 없습니다")

	market := readFile(t, state.Paths.AnalysisPath(config.DefaultMarketReportFile))
	assert.Contains(t, market, "상표 출원 시장 동향 분석")

	charts, ok := state.Step(StepCharts)
	require.True(t, ok)
	assert.Equal(t, StepStatusSkipped, charts.Status)
	assert.NoFileExists(t, state.Paths.AnalysisPath(config.ChartGlobalTopClasses))
	assert.NoFileExists(t, state.Paths.OutputPath(config.CombinedCSVFile))
	assert.Len(t, state.Outputs, 2)

	assert.True(t, handler.ContainsAttr("status", "no_data"))
}

func TestService_RunMissingDataDir(t *testing.T) {
	svc, handler := newTestService(t, filepath.Join(t.TempDir(), "missing"))

	state, err := svc.Run(context.Background(), KindAll)
	require.ErrorIs(t, err, apperrors.ErrDataDirMissing)
	assert.Equal(t, 3, apperrors.ExitCode(err))
	assert.False(t, state.NoData)
	assert.Empty(t, state.Outputs)
	assert.True(t, handler.ContainsAttr("status", "failed"))
}

func TestService_RunUnknownKind(t *testing.T) {
	svc, _ := newTestService(t, t.TempDir())

	_, err := svc.Run(context.Background(), Kind("export"))
	assert.ErrorContains(t, err, "unknown run kind")
}

func TestService_Inspect(t *testing.T) {
	dir := writeFilings(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "JP_DATA.xlsx"), []byte("broken"), 0644))
	svc, _ := newTestService(t, dir)

	reports, failures, err := svc.Inspect(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "KR_DATA.xlsx", reports[0].Name)
	assert.Equal(t, "한국", reports[0].Country)
	assert.Equal(t, 21, reports[0].Rows)
	require.Len(t, failures, 1)
	assert.Equal(t, "JP_DATA.xlsx", failures[0].Name)
}

func TestOptions(t *testing.T) {
	cfg := config.Default().Analysis
	cfg.MinEndYearVolume = 7

	opts := Options(cfg)
	assert.Equal(t, 7, opts.MinEndYearVolume)
	assert.Equal(t, cfg.TopN, opts.TopN)
	assert.Equal(t, cfg.GrowthWindowYears, opts.GrowthWindowYears)
	assert.Equal(t, cfg.StopWords, opts.StopWords)
	assert.Equal(t, "한국", opts.GroupCountry)
}

func TestService_InspectMissingDataDir(t *testing.T) {
	svc, handler := newTestService(t, filepath.Join(t.TempDir(), "missing"))

	_, _, err := svc.Inspect(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDataDirMissing)
	assert.True(t, handler.ContainsMessage("Input directory does not exist"))
}
