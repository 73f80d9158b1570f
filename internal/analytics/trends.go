package analytics

import (
	"sort"

	"tmanalyzer/pkg/contracts/domain"
)

// TrendsResult is the year × country filing matrix over the most recent years.
type TrendsResult struct {
	Years     []int    `json:"years"`
	Countries []string `json:"countries"`
	// Counts[i][j] is the number of filings of Countries[j] in Years[i].
	Counts [][]int `json:"counts"`
}

// Empty reports whether no dated filing fell into the window.
func (t TrendsResult) Empty() bool {
	return len(t.Years) == 0
}

// Series returns one country's counts aligned with Years.
func (t TrendsResult) Series(country string) []int {
	for j, c := range t.Countries {
		if c != country {
			continue
		}
		series := make([]int, len(t.Years))
		for i := range t.Years {
			series[i] = t.Counts[i][j]
		}
		return series
	}
	return nil
}

// RecentTrends counts filings per year and country for the last TrendYears
// distinct observed years. Countries are sorted by name.
func RecentTrends(table *domain.FilingTable, opts Options) TrendsResult {
	dated := table.Dated()
	years := distinctYears(dated)
	if len(years) == 0 {
		return TrendsResult{}
	}
	years = years[max(0, len(years)-opts.TrendYears):]

	index := make(map[int]int, len(years))
	for i, y := range years {
		index[y] = i
	}

	countries := countriesOf(dated)
	sort.Strings(countries)
	column := make(map[string]int, len(countries))
	for j, c := range countries {
		column[c] = j
	}

	counts := make([][]int, len(years))
	for i := range counts {
		counts[i] = make([]int, len(countries))
	}
	for _, r := range dated {
		year, _ := r.Year()
		if i, ok := index[year]; ok {
			counts[i][column[r.Country]]++
		}
	}

	return TrendsResult{Years: years, Countries: countries, Counts: counts}
}
