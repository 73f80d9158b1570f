package analytics

import (
	"sort"

	"tmanalyzer/pkg/contracts/domain"
)

// Diversity is the set of distinct classes a country files in.
type Diversity struct {
	Country string   `json:"country"`
	Count   int      `json:"count"`
	Classes []string `json:"classes"`
	// Labels are the classes formatted with their descriptions.
	Labels []string `json:"labels"`
}

// GoodsAverage is the mean number of designated-goods items per filing.
type GoodsAverage struct {
	Country string  `json:"country"`
	Filings int     `json:"filings"`
	Mean    float64 `json:"mean"`
}

// ComparisonResult compares portfolio breadth across countries.
type ComparisonResult struct {
	Diversity     []Diversity    `json:"diversity"`
	GoodsAverages []GoodsAverage `json:"goods_averages"`
}

// Comparison ranks countries by class diversity and by goods items per filing.
func Comparison(table *domain.FilingTable, catalog *domain.ClassCatalog) ComparisonResult {
	var result ComparisonResult
	if table.IsEmpty() {
		return result
	}

	groups := table.ByCountry()
	for _, country := range table.Countries() {
		rows := groups[country]

		seen := make(map[string]bool)
		goods := 0
		for _, r := range rows {
			seen[r.ClassKey()] = true
			goods += r.GoodsCount()
		}

		classes := make([]string, 0, len(seen))
		for key := range seen {
			classes = append(classes, key)
		}
		sortClassKeys(classes)

		labels := make([]string, len(classes))
		for i, key := range classes {
			labels[i] = catalog.Label(key)
		}

		result.Diversity = append(result.Diversity, Diversity{
			Country: country,
			Count:   len(classes),
			Classes: classes,
			Labels:  labels,
		})
		result.GoodsAverages = append(result.GoodsAverages, GoodsAverage{
			Country: country,
			Filings: len(rows),
			Mean:    float64(goods) / float64(len(rows)),
		})
	}

	sort.SliceStable(result.Diversity, func(i, j int) bool {
		return result.Diversity[i].Count > result.Diversity[j].Count
	})
	sort.SliceStable(result.GoodsAverages, func(i, j int) bool {
		return result.GoodsAverages[i].Mean > result.GoodsAverages[j].Mean
	})

	return result
}
