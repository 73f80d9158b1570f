package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "tmanalyzer/internal/errors"
)

// lockFilePrefix marks the owner files Office leaves next to open workbooks.
const lockFilePrefix = "~$"

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds input spreadsheets in a directory
type Discovery struct {
	logger *slog.Logger
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{logger: logger}
}

// FindSpreadsheets returns the regular files in dir matching pattern, sorted by
// name. Office lock files are skipped. A directory without matches yields an
// empty slice; a missing directory yields ErrDataDirMissing.
func (d *Discovery) FindSpreadsheets(dir, pattern string) ([]FileInfo, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", dir, apperrors.ErrDataDirMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", dir, apperrors.ErrDataDirMissing)
	}

	files, err := d.FindFilesByPattern(dir, pattern)
	if err != nil {
		return nil, err
	}

	kept := files[:0]
	for _, file := range files {
		if strings.HasPrefix(file.Name, lockFilePrefix) {
			d.logger.Debug("Skipping Office lock file", slog.String("file", file.Name))
			continue
		}
		kept = append(kept, file)
	}

	d.logger.Info("Spreadsheets discovered",
		slog.String("directory", dir),
		slog.String("pattern", pattern),
		slog.Int("count", len(kept)))

	return kept, nil
}

// FindFilesByPattern finds regular files in dir matching a glob pattern, sorted by name
func (d *Discovery) FindFilesByPattern(dir, pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// TotalSize sums the size of the given files
func TotalSize(files []FileInfo) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
