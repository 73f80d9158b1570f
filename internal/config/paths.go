package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every directory the analyzer reads from or writes to.
// Relative configuration values are resolved against the working directory.
type Paths struct {
	DataDir     string
	OutputDir   string
	BasicDir    string
	AnalysisDir string
	LogsDir     string
}

// ResolvePaths turns the configured directories into absolute paths
func ResolvePaths(cfg *Config) (*Paths, error) {
	dataDir, err := filepath.Abs(cfg.Input.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	outputDir, err := filepath.Abs(cfg.Output.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	logsDir := ""
	if cfg.Logging.FilePath != "" {
		logPath, err := filepath.Abs(cfg.Logging.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
		logsDir = filepath.Dir(logPath)
	}

	return &Paths{
		DataDir:     dataDir,
		OutputDir:   outputDir,
		BasicDir:    joinUnlessAbs(outputDir, cfg.Output.BasicDir),
		AnalysisDir: joinUnlessAbs(outputDir, cfg.Output.AnalysisDir),
		LogsDir:     logsDir,
	}, nil
}

func joinUnlessAbs(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates the output directories if they don't exist.
// The data directory is never created; a missing one is reported by the loader.
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.OutputDir, p.BasicDir, p.AnalysisDir}
	if p.LogsDir != "" {
		directories = append(directories, p.LogsDir)
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// BasicPath returns a file path inside the basic-analysis output directory
func (p *Paths) BasicPath(filename string) string {
	return filepath.Join(p.BasicDir, filename)
}

// AnalysisPath returns a file path inside the market-analysis output directory
func (p *Paths) AnalysisPath(filename string) string {
	return filepath.Join(p.AnalysisDir, filename)
}

// OutputPath returns a file path directly under the output root
func (p *Paths) OutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// LogPathResolution logs the resolved directories for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("data", p.DataDir),
			slog.String("output", p.OutputDir),
			slog.String("basic", p.BasicDir),
			slog.String("analysis", p.AnalysisDir),
			slog.String("logs", p.LogsDir),
		))
}
