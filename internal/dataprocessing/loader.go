package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/files"
	"tmanalyzer/internal/validation"
)

// Failure reasons recorded for skipped files.
const (
	FailureCountry = "country"
	FailureInvalid = "invalid"
	FailureRead    = "read"
	FailureColumns = "columns"
)

// LoaderConfig controls which files are read and how.
type LoaderConfig struct {
	Pattern   string
	SheetName string
	Aliases   map[string]string
}

// LoadedFile is one spreadsheet that was read successfully.
type LoadedFile struct {
	Name    string
	Path    string
	Country string
	Sheet   *Sheet
	Columns ColumnMap
}

// FileFailure records a file that was skipped and why.
type FileFailure struct {
	Name   string
	Path   string
	Reason string
	Err    error
}

// LoadResult is the outcome of loading a data directory, in file-processing order.
type LoadResult struct {
	Files    []LoadedFile
	Failures []FileFailure
}

// TotalRows is the number of data rows across every loaded sheet.
func (r *LoadResult) TotalRows() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Files {
		total += len(f.Sheet.Rows)
	}
	return total
}

// Countries lists the country labels of loaded files in load order, without duplicates.
func (r *LoadResult) Countries() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Files {
		if !seen[f.Country] {
			seen[f.Country] = true
			out = append(out, f.Country)
		}
	}
	return out
}

// Loader reads every matching spreadsheet of a directory.
type Loader struct {
	cfg       LoaderConfig
	discovery *files.Discovery
	validator *validation.FileValidator
	resolver  *CountryResolver
	logger    *slog.Logger
}

// NewLoader creates a loader. A nil logger uses slog.Default.
func NewLoader(cfg LoaderConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "*.xlsx"
	}
	return &Loader{
		cfg:       cfg,
		discovery: files.NewDiscovery(logger),
		validator: validation.NewFileValidator(logger),
		resolver:  NewCountryResolver(cfg.Aliases),
		logger:    logger,
	}
}

// Load reads every matching file in dir. Files that cannot be used are logged
// and reported in Failures; they never abort the run. A directory without
// matching files yields an empty result.
func (l *Loader) Load(ctx context.Context, dir string) (*LoadResult, error) {
	candidates, err := l.discovery.FindSpreadsheets(dir, l.cfg.Pattern)
	if err != nil {
		return nil, err
	}

	l.logger.DebugContext(ctx, "Loading spreadsheets",
		slog.String("directory", dir),
		slog.Int("files", len(candidates)),
		slog.Int64("bytes", files.TotalSize(candidates)))

	result := &LoadResult{}
	for _, file := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		loaded, failure := l.loadFile(file)
		if failure != nil {
			l.logger.WarnContext(ctx, "Skipping file",
				slog.String("file", failure.Name),
				slog.String("reason", failure.Reason),
				slog.String("error", failure.Err.Error()))
			result.Failures = append(result.Failures, *failure)
			continue
		}

		l.logger.InfoContext(ctx, "Loaded file",
			slog.String("file", loaded.Name),
			slog.String("country", loaded.Country),
			slog.String("sheet", loaded.Sheet.Name),
			slog.Int("rows", len(loaded.Sheet.Rows)))
		result.Files = append(result.Files, *loaded)
	}

	l.logger.InfoContext(ctx, "Load complete",
		slog.Int("files_loaded", len(result.Files)),
		slog.Int("files_failed", len(result.Failures)),
		slog.Int("total_rows", result.TotalRows()))

	return result, nil
}

func (l *Loader) loadFile(file files.FileInfo) (*LoadedFile, *FileFailure) {
	fail := func(reason string, err error) *FileFailure {
		return &FileFailure{Name: file.Name, Path: file.Path, Reason: reason, Err: err}
	}

	country, err := l.resolver.Resolve(file.Name)
	if err != nil {
		return nil, fail(FailureCountry, err)
	}

	if err := l.validator.ValidateExcelFile(file.Path); err != nil {
		return nil, fail(FailureInvalid, err)
	}

	sheet, err := ReadSheet(file.Path, l.cfg.SheetName)
	if err != nil {
		return nil, fail(FailureRead, err)
	}

	columns := MapColumns(sheet.Header)
	if len(columns) == 0 {
		return nil, fail(FailureColumns,
			fmt.Errorf("header %v: %w", sheet.Header, apperrors.ErrMissingColumn))
	}

	return &LoadedFile{
		Name:    file.Name,
		Path:    file.Path,
		Country: country,
		Sheet:   sheet,
		Columns: columns,
	}, nil
}
