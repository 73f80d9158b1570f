package analytics

import (
	"math"
	"sort"

	"tmanalyzer/pkg/contracts/domain"
)

// ClassGrowth is the compound growth of one class across the growth window.
type ClassGrowth struct {
	ClassKey    string  `json:"class"`
	Description string  `json:"description"`
	StartCount  int     `json:"start_count"`
	EndCount    int     `json:"end_count"`
	CAGR        float64 `json:"cagr"`
}

// GrowthResult ranks the fastest-growing classes. Skipped is set when fewer
// distinct years than the window were observed.
type GrowthResult struct {
	Skipped   bool          `json:"skipped"`
	Years     []int         `json:"years"`
	StartYear int           `json:"start_year"`
	EndYear   int           `json:"end_year"`
	Classes   []ClassGrowth `json:"classes"`
}

// ClassYearPivot counts dated filings per class key and year.
func ClassYearPivot(records []domain.FilingRecord) map[string]map[int]int {
	pivot := make(map[string]map[int]int)
	for _, r := range records {
		year, ok := r.Year()
		if !ok {
			continue
		}
		key := r.ClassKey()
		if pivot[key] == nil {
			pivot[key] = make(map[int]int)
		}
		pivot[key][year]++
	}
	return pivot
}

// distinctYears returns the sorted set of years among dated records.
func distinctYears(records []domain.FilingRecord) []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range records {
		if year, ok := r.Year(); ok && !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// Growth ranks classes by (end/(start+1))^(1/span) - 1 between the first and
// last of the latest GrowthWindowYears distinct years. Only classes whose
// end-year count exceeds MinEndYearVolume are ranked.
func Growth(table *domain.FilingTable, catalog *domain.ClassCatalog, opts Options) GrowthResult {
	dated := table.Dated()
	years := distinctYears(dated)
	if len(years) < opts.GrowthWindowYears || opts.GrowthWindowYears < 2 {
		return GrowthResult{Skipped: true, Years: years}
	}

	window := years[len(years)-opts.GrowthWindowYears:]
	result := GrowthResult{
		Years:     window,
		StartYear: window[0],
		EndYear:   window[len(window)-1],
	}
	span := float64(result.EndYear - result.StartYear)

	for key, byYear := range ClassYearPivot(dated) {
		start, end := byYear[result.StartYear], byYear[result.EndYear]
		if end <= opts.MinEndYearVolume {
			continue
		}
		result.Classes = append(result.Classes, ClassGrowth{
			ClassKey:    key,
			Description: catalog.Describe(key),
			StartCount:  start,
			EndCount:    end,
			CAGR:        math.Pow(float64(end)/float64(start+1), 1/span) - 1,
		})
	}

	sort.Slice(result.Classes, func(i, j int) bool {
		if result.Classes[i].CAGR != result.Classes[j].CAGR {
			return result.Classes[i].CAGR > result.Classes[j].CAGR
		}
		return compareClassKeys(result.Classes[i].ClassKey, result.Classes[j].ClassKey)
	})
	result.Classes = limit(result.Classes, opts.TopN)

	return result
}
