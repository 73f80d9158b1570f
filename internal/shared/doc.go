// Package shared holds helpers used by more than one tmanalyzer package.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger to capture and assert on slog output
//   - WriteWorkbook and WriteFilingWorkbook to generate .xlsx fixtures with excelize
//
// Nothing here contains domain logic.
package shared
