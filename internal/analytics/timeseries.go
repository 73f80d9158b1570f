package analytics

import (
	"math"
	"sort"

	"tmanalyzer/pkg/contracts/domain"
)

// YearCount is the number of dated filings in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CountryYears holds the busiest years of one country.
type CountryYears struct {
	Country string      `json:"country"`
	Years   []YearCount `json:"years"`
}

// CountryCAGR is the compound annual growth of one country's filings.
type CountryCAGR struct {
	Country    string  `json:"country"`
	StartYear  int     `json:"start_year"`
	EndYear    int     `json:"end_year"`
	StartCount int     `json:"start_count"`
	EndCount   int     `json:"end_count"`
	CAGR       float64 `json:"cagr"`
}

// TimeSeriesResult holds yearly counts per country and their growth.
type TimeSeriesResult struct {
	// Counts maps country → year → dated filings.
	Counts      map[string]map[int]int `json:"counts"`
	TopYears    []CountryYears         `json:"top_years"`
	CAGR        []CountryCAGR          `json:"cagr"`
	WindowStart int                    `json:"window_start"`
	WindowEnd   int                    `json:"window_end"`
}

// IsEmpty reports whether no dated filing was found.
func (r TimeSeriesResult) IsEmpty() bool {
	return len(r.Counts) == 0
}

// CAGR returns (end/start)^(1/periods) - 1. It is undefined when start is
// not positive or there are no periods.
func CAGR(start, end float64, periods int) (float64, bool) {
	if start <= 0 || periods <= 0 {
		return 0, false
	}
	return math.Pow(end/start, 1/float64(periods)) - 1, true
}

// TimeSeries counts dated filings per (year, country), ranks each country's
// busiest years and computes the growth over the last CAGRWindowYears years
// ending at the latest observed year. Countries missing either end of the
// window are left out of the growth list.
func TimeSeries(table *domain.FilingTable, opts Options) TimeSeriesResult {
	result := TimeSeriesResult{Counts: make(map[string]map[int]int)}

	dated := table.Dated()
	maxYear := 0
	for _, r := range dated {
		year, _ := r.Year()
		if result.Counts[r.Country] == nil {
			result.Counts[r.Country] = make(map[int]int)
		}
		result.Counts[r.Country][year]++
		if year > maxYear {
			maxYear = year
		}
	}
	if len(dated) == 0 {
		return result
	}

	countries := countriesOf(dated)
	for _, country := range countries {
		years := make([]YearCount, 0, len(result.Counts[country]))
		for year, count := range result.Counts[country] {
			years = append(years, YearCount{Year: year, Count: count})
		}
		sort.Slice(years, func(i, j int) bool {
			if years[i].Count != years[j].Count {
				return years[i].Count > years[j].Count
			}
			return years[i].Year < years[j].Year
		})
		result.TopYears = append(result.TopYears, CountryYears{Country: country, Years: limit(years, opts.TopN)})
	}

	periods := opts.CAGRWindowYears - 1
	result.WindowEnd = maxYear
	result.WindowStart = maxYear - periods
	for _, country := range countries {
		start, okStart := result.Counts[country][result.WindowStart]
		end, okEnd := result.Counts[country][result.WindowEnd]
		if !okStart || !okEnd {
			continue
		}
		cagr, ok := CAGR(float64(start), float64(end), periods)
		if !ok {
			continue
		}
		result.CAGR = append(result.CAGR, CountryCAGR{
			Country:    country,
			StartYear:  result.WindowStart,
			EndYear:    result.WindowEnd,
			StartCount: start,
			EndCount:   end,
			CAGR:       cagr,
		})
	}

	return result
}
