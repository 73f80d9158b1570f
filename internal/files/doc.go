// Package files provides file system operations for tmanalyzer.
//
// Discovery finds the input spreadsheets of a run: regular files matching a
// glob pattern, sorted by name, with Office lock files (~$*) skipped.
//
// Manager writes output files atomically through a temporary file in the
// destination directory.
//
//	discovery := files.NewDiscovery(logger)
//	inputs, err := discovery.FindSpreadsheets("data", "*.xlsx")
//
//	manager := files.NewManager(logger)
//	err = manager.WriteFile("outputs/basic/analysis_results.txt", func(w io.Writer) error {
//		return reporter.WriteBasic(w, result, meta)
//	})
package files
