// Package dataprocessing turns per-country trademark filing workbooks into a
// single normalized FilingTable.
//
// # Components
//
//   - ReadSheet: reads one worksheet with excelize and locates its header row
//   - MatchColumn / MapColumns: map Korean and English headers to canonical columns
//   - CountryResolver: derives a validated country label from each file name
//   - Loader: discovers, validates and reads every file of a directory, recording failures
//   - Normalizer: parses dates, extracts class codes and fills missing names
//   - Inspector: profiles files without normalizing them
//
// # Usage
//
//	loader := dataprocessing.NewLoader(dataprocessing.LoaderConfig{
//	    Pattern: "*.xlsx",
//	    Aliases: map[string]string{"KR": "한국"},
//	}, logger)
//	result, err := loader.Load(ctx, "data")
//	if err != nil {
//	    return err
//	}
//	table, stats := dataprocessing.NewNormalizer(logger).Normalize(ctx, result)
//
// # Error Handling
//
// A file that cannot be used never stops a run. It is logged and reported as a
// FileFailure with one of the Failure* reasons. Field-level problems become
// null dates, the fallback class bucket or the name placeholder, and are
// counted in NormalizeStats.
package dataprocessing
