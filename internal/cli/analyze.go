package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/pipeline"
	"tmanalyzer/internal/report"
	"tmanalyzer/internal/validation"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	return newRunCmd(pipeline.KindBasic, "Write the basic statistics report",
		"Consolidate every export and write the per-country statistics report:\n"+
			"yearly counts and CAGR, class shares, diversity, name and goods analysis.")
}

// NewTrendsCmd creates the trends command
func NewTrendsCmd() *cobra.Command {
	return newRunCmd(pipeline.KindMarket, "Write the market trend report and charts",
		"Consolidate every export and write the market trend report with its PNG charts:\n"+
			"top classes, similarity groups, recent trends, promising fields and seasonality.")
}

// NewAllCmd creates the all command
func NewAllCmd() *cobra.Command {
	return newRunCmd(pipeline.KindAll, "Write both reports, the charts and the exports", "")
}

func newRunCmd(kind pipeline.Kind, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runAnalysis(cmd, cliCtx, kind)
		},
	}
}

func runAnalysis(cmd *cobra.Command, cliCtx *CLIContext, kind pipeline.Kind) error {
	ctx := cmd.Context()

	if err := cliCtx.Paths.EnsureDirectories(); err != nil {
		return apperrors.NewStorageError("failed to create output directories", err)
	}
	if err := validation.NewFileValidator(cliCtx.Logger).ValidateOutputDirectory(cliCtx.Paths.OutputDir); err != nil {
		return err
	}

	svc, err := pipeline.NewService(cliCtx.Config, cliCtx.Paths, cliCtx.Telemetry, cliCtx.Logger)
	if err != nil {
		return err
	}

	state, err := svc.Run(ctx, kind)
	switch {
	case errors.Is(err, apperrors.ErrNoData):
		cliCtx.Logger.WarnContext(ctx, "No filings found, reports contain the header only",
			slog.String("data_dir", cliCtx.Paths.DataDir),
			slog.String("reason", err.Error()))
		fmt.Fprintf(cmd.OutOrStdout(), "%s 분석할 데이터가 없습니다: %s\n", report.Warning, cliCtx.Paths.DataDir)
	case err != nil:
		return err
	default:
		PrintSuccess(cmd, fmt.Sprintf("%d rows from %d files", state.Table.Len(), len(state.Load.Files)))
	}

	for _, f := range state.Load.Failures {
		fmt.Fprintf(cmd.OutOrStdout(), "%s 건너뛴 파일: %s (%s)\n", report.Warning, f.Name, f.Reason)
	}
	for _, path := range state.Outputs {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path)
	}
	return nil
}
