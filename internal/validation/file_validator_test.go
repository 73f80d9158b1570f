package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/internal/shared/testutil"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "KR_DATA.xlsx"), []byte("x"), 0644))

	logger, handler := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	count, err := v.ValidateInputDirectory(dir, "*.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = v.ValidateInputDirectory(dir, "*.csv")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, handler.ContainsMessage("No files matching pattern"))

	_, err = v.ValidateInputDirectory(filepath.Join(dir, "missing"), "*.xlsx")
	assert.True(t, errors.Is(err, apperrors.ErrDataDirMissing))

	_, err = v.ValidateInputDirectory(dir, "[")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	v := NewFileValidator(nil)

	require.NoError(t, v.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe is removed")
}

func TestFileValidator_ValidateExcelFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		errType apperrors.ErrorType
	}{
		{name: "valid workbook", path: write("KR_DATA.xlsx", "zip")},
		{name: "missing", path: filepath.Join(dir, "absent.xlsx"), errType: apperrors.ErrTypeNotFound},
		{name: "wrong extension", path: write("data.csv", "a,b"), errType: apperrors.ErrTypeValidation},
		{name: "lock file", path: write("~$KR_DATA.xlsx", "x"), errType: apperrors.ErrTypeValidation},
		{name: "empty file", path: write("EMPTY.xlsx", ""), errType: apperrors.ErrTypeValidation},
		{name: "directory", path: dir, errType: apperrors.ErrTypeValidation},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateExcelFile(tt.path)
			if tt.errType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errType, apperrors.TypeOf(err))
		})
	}
}
