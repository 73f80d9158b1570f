package analytics

import (
	"sort"
	"strconv"

	"tmanalyzer/pkg/contracts/domain"
)

// Options holds the thresholds shared by every aggregator.
type Options struct {
	TopN               int
	GlobalTopN         int
	KeywordTopN        int
	CAGRWindowYears    int
	GrowthWindowYears  int
	MinEndYearVolume   int
	MinNameTokenLen    int
	MinGoodsKeywordLen int
	TrendYears         int
	ChartCountries     int
	StopWords          []string
	GroupCountry       string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		TopN:               5,
		GlobalTopN:         10,
		KeywordTopN:        10,
		CAGRWindowYears:    5,
		GrowthWindowYears:  4,
		MinEndYearVolume:   100,
		MinNameTokenLen:    3,
		MinGoodsKeywordLen: 3,
		TrendYears:         10,
		ChartCountries:     4,
		StopWords:          []string{"the", "and", "of", "for", "in", "a", "trade", "mark", "ltd", "inc", "co", "group"},
		GroupCountry:       "한국",
	}
}

func (o Options) stopWords() map[string]bool {
	set := make(map[string]bool, len(o.StopWords))
	for _, w := range o.StopWords {
		set[w] = true
	}
	return set
}

// compareClassKeys orders numeric class keys numerically with the fallback bucket last.
func compareClassKeys(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}

// sortClassKeys sorts keys in place with compareClassKeys.
func sortClassKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool { return compareClassKeys(keys[i], keys[j]) })
}

// countriesOf lists countries in first-appearance order.
func countriesOf(records []domain.FilingRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !seen[r.Country] {
			seen[r.Country] = true
			out = append(out, r.Country)
		}
	}
	return out
}

func limit[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
