package analytics

import "tmanalyzer/pkg/contracts/domain"

// SeasonalityResult is the monthly filing volume across all years.
type SeasonalityResult struct {
	// Months[0] is January.
	Months [12]int `json:"months"`
	Total  int     `json:"total"`
}

// Empty reports whether no dated filing was counted.
func (s SeasonalityResult) Empty() bool {
	return s.Total == 0
}

// Peak returns the busiest month (1-12), the earliest one on ties.
// It returns 0 when the result is empty.
func (s SeasonalityResult) Peak() int {
	if s.Empty() {
		return 0
	}
	peak := 0
	for i, n := range s.Months {
		if n > s.Months[peak] {
			peak = i
		}
	}
	return peak + 1
}

// Count returns the filings of month m (1-12).
func (s SeasonalityResult) Count(m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	return s.Months[m-1]
}

// Seasonality counts dated filings per calendar month.
func Seasonality(table *domain.FilingTable) SeasonalityResult {
	var result SeasonalityResult
	for _, r := range table.Dated() {
		month, _ := r.Month()
		result.Months[month-1]++
		result.Total++
	}
	return result
}
