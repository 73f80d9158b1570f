package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"tmanalyzer/internal/analytics"
	"tmanalyzer/internal/config"
	"tmanalyzer/internal/dataprocessing"
	"tmanalyzer/internal/exporter"
	"tmanalyzer/internal/files"
	"tmanalyzer/internal/infrastructure"
	"tmanalyzer/internal/report"
	"tmanalyzer/internal/validation"
	"tmanalyzer/pkg/contracts/domain"
)

// Kind selects which outputs a run produces.
type Kind string

const (
	// KindBasic produces the basic statistics report.
	KindBasic Kind = "analyze"
	// KindMarket produces the market trend report and charts.
	KindMarket Kind = "trends"
	// KindAll produces both.
	KindAll Kind = "all"
)

// Service wires configuration, telemetry and components into runs.
type Service struct {
	cfg       *config.Config
	paths     *config.Paths
	catalog   *domain.ClassCatalog
	telemetry *infrastructure.OTelProviders
	logger    *slog.Logger
}

// NewService creates a service. A nil telemetry falls back to no-op providers.
func NewService(cfg *config.Config, paths *config.Paths, telemetry *infrastructure.OTelProviders, logger *slog.Logger) (*Service, error) {
	logger = infrastructure.WithComponent(logger, "pipeline")
	if telemetry == nil {
		var err error
		telemetry, err = infrastructure.InitializeOTel(infrastructure.OTelConfig{}, logger)
		if err != nil {
			return nil, err
		}
	}
	return &Service{
		cfg:       cfg,
		paths:     paths,
		catalog:   domain.DefaultClassCatalog(),
		telemetry: telemetry,
		logger:    logger,
	}, nil
}

// Options converts the analysis configuration into aggregator options.
func Options(cfg config.AnalysisConfig) analytics.Options {
	return analytics.Options{
		TopN:               cfg.TopN,
		GlobalTopN:         cfg.GlobalTopN,
		KeywordTopN:        cfg.KeywordTopN,
		CAGRWindowYears:    cfg.CAGRWindowYears,
		GrowthWindowYears:  cfg.GrowthWindowYears,
		MinEndYearVolume:   cfg.MinEndYearVolume,
		MinNameTokenLen:    cfg.MinNameTokenLen,
		MinGoodsKeywordLen: cfg.MinGoodsKeywordLen,
		TrendYears:         cfg.TrendYears,
		ChartCountries:     cfg.ChartCountries,
		StopWords:          cfg.StopWords,
		GroupCountry:       cfg.GroupCountry,
	}
}

func (s *Service) loaderConfig() dataprocessing.LoaderConfig {
	return dataprocessing.LoaderConfig{
		Pattern:   s.cfg.Input.Pattern,
		SheetName: s.cfg.Input.SheetName,
		Aliases:   s.cfg.Input.CountryAliases,
	}
}

func (s *Service) components(kind Kind) (*components, error) {
	manager := files.NewManager(s.logger)
	c := &components{
		loader:     dataprocessing.NewLoader(s.loaderConfig(), s.logger),
		normalizer: dataprocessing.NewNormalizer(s.logger),
		catalog:    s.catalog,
		opts:       Options(s.cfg.Analysis),
		files:      manager,
		text:       report.NewTextReporter(s.catalog, s.cfg.Analysis.TopN),
		csv:        exporter.NewFilingExporter(s.paths),
		workbook:   exporter.NewWorkbookExporter(manager, s.logger),
		sqlite:     exporter.NewSQLiteExporter(s.logger),
		metrics:    s.telemetry.Metrics,
		logger:     s.logger,
	}

	if kind != KindBasic {
		charts, err := report.NewChartRenderer(s.catalog, s.cfg.Output.FontPath, s.logger)
		if err != nil {
			return nil, err
		}
		c.charts = charts
	}
	return c, nil
}

// build registers the steps of a run kind in execution order.
func build(kind Kind, c *components) (*Registry, error) {
	basic := kind == KindBasic || kind == KindAll
	market := kind == KindMarket || kind == KindAll
	if !basic && !market {
		return nil, fmt.Errorf("unknown run kind %q", kind)
	}

	steps := []Step{
		&LoadStep{NewBaseStep(StepLoad, "Load spreadsheets"), c},
		&NormalizeStep{NewBaseStep(StepNormalize, "Normalize filings"), c},
	}
	if basic {
		steps = append(steps, &AnalyzeBasicStep{NewBaseStep(StepAnalyzeBasic, "Basic statistics"), c})
	}
	if market {
		steps = append(steps, &AnalyzeMarketStep{NewBaseStep(StepAnalyzeMarket, "Market trends"), c})
	}
	if basic {
		steps = append(steps, &ReportBasicStep{NewBaseStep(StepReportBasic, "Basic report"), c})
	}
	if market {
		steps = append(steps,
			&ReportMarketStep{NewBaseStep(StepReportMarket, "Market report"), c},
			&ChartStep{NewBaseStep(StepCharts, "Charts"), c},
		)
	}
	steps = append(steps, &ExportStep{NewBaseStep(StepExport, "Exports"), c})

	registry := NewRegistry()
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Run executes one analysis run. A run without any loadable row returns
// apperrors.ErrNoData after writing the report headers.
func (s *Service) Run(ctx context.Context, kind Kind) (*State, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	c, err := s.components(kind)
	if err != nil {
		return nil, err
	}
	registry, err := build(kind, c)
	if err != nil {
		return nil, err
	}

	ctx, end := s.telemetry.StartStage(ctx, "run."+string(kind))
	infrastructure.SetSpanAttributes(ctx, attribute.String("run.kind", string(kind)))

	state := NewState(runID, kind, s.cfg, s.paths)
	s.logger.InfoContext(ctx, "operation_start",
		slog.String("run_id", runID),
		slog.String("kind", string(kind)),
		slog.String("data_dir", s.paths.DataDir),
		slog.Int("steps", registry.Count()))

	err = NewRunner(registry, s.telemetry, s.logger).Run(ctx, state)
	end(err)

	status := "completed"
	switch {
	case state.NoData:
		status = "no_data"
	case err != nil:
		status = "failed"
	}
	s.logger.InfoContext(ctx, "operation_complete",
		slog.String("run_id", runID),
		slog.String("status", status),
		slog.Int("outputs", len(state.Outputs)))

	return state, err
}

// Inspect reports the layout of every input file without analyzing it.
func (s *Service) Inspect(ctx context.Context) ([]dataprocessing.FileReport, []dataprocessing.FileFailure, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, end := s.telemetry.StartStage(ctx, "inspect")

	cfg := s.loaderConfig()
	if _, err := validation.NewFileValidator(s.logger).ValidateInputDirectory(s.paths.DataDir, cfg.Pattern); err != nil {
		end(err)
		return nil, nil, err
	}

	reports, failures, err := dataprocessing.NewInspector(cfg, s.logger).Inspect(ctx, s.paths.DataDir)
	end(err)
	if err != nil {
		return nil, nil, err
	}

	s.telemetry.Metrics.FilesLoaded.Add(ctx, int64(len(reports)))
	s.telemetry.Metrics.FilesFailed.Add(ctx, int64(len(failures)))
	return reports, failures, nil
}
