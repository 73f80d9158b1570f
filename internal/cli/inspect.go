package cli

import (
	"github.com/spf13/cobra"

	"tmanalyzer/internal/pipeline"
	"tmanalyzer/internal/report"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Describe the layout of every input spreadsheet",
		Long: "Print, per file, the sheet used, the detected header row, per-column fill\n" +
			"counts and value kinds, and the first rows. Nothing is written to disk.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			svc, err := pipeline.NewService(cliCtx.Config, cliCtx.Paths, cliCtx.Telemetry, cliCtx.Logger)
			if err != nil {
				return err
			}
			reports, failures, err := svc.Inspect(cmd.Context())
			if err != nil {
				return err
			}
			return report.WriteInspection(cmd.OutOrStdout(), reports, failures)
		},
	}
}
