package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tmanalyzer/internal/config"
	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/infrastructure"
	"tmanalyzer/pkg/contracts"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	OutDir     string
	LogLevel   string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.OTelProviders

	logFile *os.File
}

// Close flushes telemetry and closes the log file.
func (c *CLIContext) Close(ctx context.Context) error {
	var errs []error
	if c.Telemetry != nil {
		if err := c.Telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		c.logFile = nil
	}
	return errors.Join(errs...)
}

// NewRootCommand creates the root command with its global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tmanalyzer",
		Short: "Trademark filing statistics from per-country spreadsheet exports",
		Long: "tmanalyzer reads per-country .xlsx exports of trademark filings, consolidates\n" +
			"them into one table and writes text reports, charts and optional exports.",
		Version: contracts.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./"+config.ConfigFileName+")")
	pf.StringVar(&opts.DataDir, "data-dir", "", "directory holding the .xlsx exports")
	pf.StringVar(&opts.OutDir, "out-dir", "", "directory receiving reports, charts and exports")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		NewAnalyzeCmd(),
		NewTrendsCmd(),
		NewAllCmd(),
		NewInspectCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun loads configuration, logger and telemetry, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(opts)
	if err != nil {
		return err
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return apperrors.NewConfigError("failed to resolve paths", err)
	}

	logger, logFile, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return apperrors.NewConfigError("logger initialization failed", err)
	}
	slog.SetDefault(logger)

	telemetry, err := infrastructure.InitializeOTel(infrastructure.OTelConfig{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: contracts.Version,
		TraceFile:      paths.OutputPath(cfg.Telemetry.TraceFile),
		MetricsFile:    paths.OutputPath(cfg.Telemetry.MetricsFile),
	}, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return fmt.Errorf("telemetry initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Telemetry: telemetry,
		logFile:   logFile,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))

	paths.LogPathResolution(logger)
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, apperrors.NewConfigError("config initialization failed", err)
	}

	if opts.DataDir != "" {
		cfg.Input.DataDir = opts.DataDir
	}
	if opts.OutDir != "" {
		cfg.Output.BaseDir = opts.OutDir
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("invalid command line option", err)
	}
	return cfg, nil
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	if cmd == nil || cmd.Context() == nil {
		return nil, fmt.Errorf("command context is nil")
	}

	cliCtx, ok := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, fmt.Errorf("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if cliCtx, cerr := GetCLIContext(cmd); cerr == nil {
		if closeErr := cliCtx.Close(context.Background()); closeErr != nil {
			fmt.Fprintf(stderr, "Warning: %s\n", closeErr)
		}
	}

	if err != nil {
		PrintError(root, err)
	}
	return apperrors.ExitCode(err)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", msg)
}
