package analytics

import (
	"sort"

	"tmanalyzer/pkg/contracts/domain"
)

// ClassShare is the share of one class within a country's filings.
type ClassShare struct {
	ClassKey    string  `json:"class"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Share       float64 `json:"share"`
}

// CountryCategory is the full class mix of one country, largest share first.
type CountryCategory struct {
	Country string       `json:"country"`
	Total   int          `json:"total"`
	Shares  []ClassShare `json:"shares"`
}

// Top returns the n largest shares.
func (c CountryCategory) Top(n int) []ClassShare {
	return limit(c.Shares, n)
}

// Category computes the percentage of each class key per country. Every row
// counts, including undated ones and the fallback bucket.
func Category(table *domain.FilingTable, catalog *domain.ClassCatalog) []CountryCategory {
	if table.IsEmpty() {
		return nil
	}

	var out []CountryCategory
	groups := table.ByCountry()
	for _, country := range table.Countries() {
		rows := groups[country]
		counts := make(map[string]int)
		for _, r := range rows {
			counts[r.ClassKey()]++
		}

		shares := make([]ClassShare, 0, len(counts))
		for key, count := range counts {
			shares = append(shares, ClassShare{
				ClassKey:    key,
				Description: catalog.Describe(key),
				Count:       count,
				Share:       float64(count) * 100 / float64(len(rows)),
			})
		}
		sort.Slice(shares, func(i, j int) bool {
			if shares[i].Count != shares[j].Count {
				return shares[i].Count > shares[j].Count
			}
			return compareClassKeys(shares[i].ClassKey, shares[j].ClassKey)
		})

		out = append(out, CountryCategory{Country: country, Total: len(rows), Shares: shares})
	}
	return out
}
