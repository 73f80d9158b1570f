package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"tmanalyzer/internal/analytics"
	"tmanalyzer/internal/config"
	"tmanalyzer/internal/dataprocessing"
	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/exporter"
	"tmanalyzer/internal/files"
	"tmanalyzer/internal/infrastructure"
	"tmanalyzer/internal/report"
	"tmanalyzer/pkg/contracts/domain"
)

// Step IDs
const (
	StepLoad          = "load"
	StepNormalize     = "normalize"
	StepAnalyzeBasic  = "analyze_basic"
	StepAnalyzeMarket = "analyze_market"
	StepReportBasic   = "report_basic"
	StepReportMarket  = "report_market"
	StepCharts        = "charts"
	StepExport        = "export"
)

// components are the collaborators shared by the steps of a run
type components struct {
	loader     *dataprocessing.Loader
	normalizer *dataprocessing.Normalizer
	catalog    *domain.ClassCatalog
	opts       analytics.Options
	files      *files.Manager
	text       *report.TextReporter
	charts     *report.ChartRenderer
	csv        *exporter.FilingExporter
	workbook   *exporter.WorkbookExporter
	sqlite     *exporter.SQLiteExporter
	metrics    *infrastructure.PipelineMetrics
	logger     *slog.Logger
}

// LoadStep reads every spreadsheet of the data directory
type LoadStep struct {
	BaseStep
	c *components
}

func (s *LoadStep) Execute(ctx context.Context, state *State) error {
	result, err := s.c.loader.Load(ctx, state.Paths.DataDir)
	if err != nil {
		return err
	}
	state.Load = result

	s.c.metrics.FilesLoaded.Add(ctx, int64(len(result.Files)))
	for _, f := range result.Failures {
		s.c.metrics.FilesFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", f.Reason)))
	}
	infrastructure.SetSpanAttributes(ctx,
		attribute.Int("files.loaded", len(result.Files)),
		attribute.Int("files.failed", len(result.Failures)),
		attribute.Int("rows", result.TotalRows()))

	if result.TotalRows() == 0 {
		return apperrors.NewNoDataError(fmt.Sprintf("%d files loaded, %d skipped",
			len(result.Files), len(result.Failures))).WithContext("data_dir", state.Paths.DataDir)
	}
	return nil
}

// NormalizeStep builds the consolidated filing table
type NormalizeStep struct {
	BaseStep
	c *components
}

func (s *NormalizeStep) Execute(ctx context.Context, state *State) error {
	table, stats := s.c.normalizer.Normalize(ctx, state.Load)
	state.Table = table
	state.Stats = stats

	s.c.metrics.RecordsNormalized.Add(ctx, int64(stats.Rows))
	infrastructure.SetSpanAttributes(ctx,
		attribute.Int("rows", stats.Rows),
		attribute.Int("null_dates", stats.NullDates))
	return nil
}

// AnalyzeBasicStep computes the per-country statistics
type AnalyzeBasicStep struct {
	BaseStep
	c *components
}

func (s *AnalyzeBasicStep) Execute(ctx context.Context, state *State) error {
	state.Basic = analytics.AnalyzeBasic(state.Table, s.c.catalog, s.c.opts)
	if state.Basic.Growth.Skipped {
		s.c.logger.WarnContext(ctx, "Class growth skipped",
			slog.Int("distinct_years", len(state.Basic.Growth.Years)),
			slog.Int("required_years", s.c.opts.GrowthWindowYears))
	}
	return nil
}

// AnalyzeMarketStep computes the market trend statistics
type AnalyzeMarketStep struct {
	BaseStep
	c *components
}

func (s *AnalyzeMarketStep) Execute(ctx context.Context, state *State) error {
	state.Market = analytics.AnalyzeMarket(state.Table, s.c.catalog, s.c.opts)
	s.c.logger.InfoContext(ctx, "Market analysis complete",
		slog.Int("global_top_classes", len(state.Market.GlobalTopClasses)),
		slog.Int("trend_years", len(state.Market.Trends.Years)),
		slog.Int("insights", len(state.Market.Insights)))
	return nil
}

// writeOutput writes one file atomically and records it on the state
func (c *components) writeOutput(state *State, path string, write func(w io.Writer) error) error {
	if err := c.files.WriteFile(path, write); err != nil {
		return apperrors.NewStorageError("failed to write output", err).WithContext("path", path)
	}
	state.AddOutput(path)
	return nil
}

// ReportBasicStep writes the basic text report
type ReportBasicStep struct {
	BaseStep
	c *components
}

func (s *ReportBasicStep) path(state *State) string {
	return state.Paths.BasicPath(state.Config.Output.ReportFile)
}

func (s *ReportBasicStep) Execute(ctx context.Context, state *State) error {
	return s.c.writeOutput(state, s.path(state), func(w io.Writer) error {
		return s.c.text.WriteBasic(w, state.Basic, state.Meta())
	})
}

func (s *ReportBasicStep) OnNoData(ctx context.Context, state *State) error {
	return s.c.writeOutput(state, s.path(state), func(w io.Writer) error {
		return s.c.text.WriteNoData(w, "상표 출원 기초 통계 분석", state.Meta())
	})
}

// ReportMarketStep writes the market text report
type ReportMarketStep struct {
	BaseStep
	c *components
}

func (s *ReportMarketStep) path(state *State) string {
	return state.Paths.AnalysisPath(state.Config.Output.MarketReportFile)
}

func (s *ReportMarketStep) Execute(ctx context.Context, state *State) error {
	return s.c.writeOutput(state, s.path(state), func(w io.Writer) error {
		return s.c.text.WriteMarket(w, state.Market, state.Meta())
	})
}

func (s *ReportMarketStep) OnNoData(ctx context.Context, state *State) error {
	return s.c.writeOutput(state, s.path(state), func(w io.Writer) error {
		return s.c.text.WriteNoData(w, "상표 출원 시장 동향 분석", state.Meta())
	})
}

// ChartStep renders the market charts. A chart without data is skipped with
// a warning; the report already carries the matching warning line.
type ChartStep struct {
	BaseStep
	c *components
}

func (s *ChartStep) Execute(ctx context.Context, state *State) error {
	m := state.Market
	r := s.c.charts
	charts := []struct {
		file   string
		render func(w io.Writer) error
	}{
		{config.ChartGlobalTopClasses, func(w io.Writer) error { return r.GlobalTopClasses(w, m.GlobalTopClasses) }},
		{config.ChartCountryTopClasses, func(w io.Writer) error { return r.CountryTopClasses(w, m.CountryTopClasses) }},
		{config.ChartKoreaTopGroups, func(w io.Writer) error { return r.SimilarityGroups(w, m.SimilarityGroups) }},
		{config.ChartTrendsByCountry, func(w io.Writer) error { return r.Trends(w, m.Trends) }},
		{config.ChartPromisingFields, func(w io.Writer) error { return r.PromisingFields(w, m.Growth) }},
		{config.ChartSeasonality, func(w io.Writer) error { return r.Seasonality(w, m.Seasonality) }},
	}

	for _, chart := range charts {
		path := state.Paths.AnalysisPath(chart.file)
		err := s.c.files.WriteFile(path, chart.render)
		switch {
		case err == nil:
			state.AddOutput(path)
		case errors.Is(err, apperrors.ErrEmptyChart):
			state.ChartsSkipped = append(state.ChartsSkipped, chart.file)
			s.c.logger.WarnContext(ctx, "Chart skipped, no data",
				slog.String("chart", chart.file))
		default:
			return fmt.Errorf("chart %s: %w", chart.file, err)
		}
	}

	infrastructure.SetSpanAttributes(ctx,
		attribute.Int("charts.skipped", len(state.ChartsSkipped)))
	return nil
}

// ExportStep writes the optional machine-readable exports
type ExportStep struct {
	BaseStep
	c *components
}

func (s *ExportStep) Execute(ctx context.Context, state *State) error {
	out := state.Config.Output

	if out.ExportCSV {
		path := state.Paths.OutputPath(config.CombinedCSVFile)
		if _, err := s.c.csv.ExportCombined(state.Table, path); err != nil {
			return apperrors.NewStorageError("failed to export CSV", err)
		}
		state.AddOutput(path)
	}

	if out.ExportWorkbook {
		path := state.Paths.OutputPath(config.ResultsWorkbook)
		if err := s.c.workbook.Export(path, state.Basic, state.Market); err != nil {
			return apperrors.NewStorageError("failed to export workbook", err)
		}
		state.AddOutput(path)
	}

	if out.ExportSQLite {
		path := state.Paths.OutputPath(config.FilingsSQLiteDB)
		if _, err := s.c.sqlite.Export(ctx, state.Table, path); err != nil {
			return apperrors.NewStorageError("failed to export SQLite database", err)
		}
		state.AddOutput(path)
	}

	return nil
}
