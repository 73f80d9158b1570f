package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()

	t.Run("relative output subdirectories", func(t *testing.T) {
		cfg := Default()
		cfg.Input.DataDir = filepath.Join(root, "data")
		cfg.Output.BaseDir = filepath.Join(root, "out")
		cfg.Logging.FilePath = filepath.Join(root, "logs", "run.log")

		paths, err := ResolvePaths(cfg)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "data"), paths.DataDir)
		assert.Equal(t, filepath.Join(root, "out", "basic"), paths.BasicDir)
		assert.Equal(t, filepath.Join(root, "out", "analysis"), paths.AnalysisDir)
		assert.Equal(t, filepath.Join(root, "logs"), paths.LogsDir)

		assert.Equal(t, filepath.Join(root, "out", "basic", "analysis_results.txt"), paths.BasicPath(cfg.Output.ReportFile))
		assert.Equal(t, filepath.Join(root, "out", "analysis", ChartSeasonality), paths.AnalysisPath(ChartSeasonality))
		assert.Equal(t, filepath.Join(root, "out", CombinedCSVFile), paths.OutputPath(CombinedCSVFile))
	})

	t.Run("absolute subdirectory is kept", func(t *testing.T) {
		cfg := Default()
		cfg.Output.BaseDir = filepath.Join(root, "out")
		cfg.Output.AnalysisDir = filepath.Join(root, "elsewhere")

		paths, err := ResolvePaths(cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "elsewhere"), paths.AnalysisDir)
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		paths, err := ResolvePaths(Default())
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(paths.DataDir))
		assert.True(t, filepath.IsAbs(paths.OutputDir))
		assert.True(t, filepath.IsAbs(paths.LogsDir))
	})
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Input.DataDir = filepath.Join(root, "data")
	cfg.Output.BaseDir = filepath.Join(root, "out")
	cfg.Logging.FilePath = ""

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.OutputDir, paths.BasicDir, paths.AnalysisDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.NoDirExists(t, paths.DataDir, "data directory must not be created")

	// Idempotent
	require.NoError(t, paths.EnsureDirectories())
}
