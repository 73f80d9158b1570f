package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"tmanalyzer/pkg/contracts/domain"
)

var groupSep = regexp.MustCompile(`[|,\s]+`)

// ClassCount is the number of filings of one class key.
type ClassCount struct {
	ClassKey    string `json:"class"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// CountryClasses is the class ranking of one country.
type CountryClasses struct {
	Country string       `json:"country"`
	Total   int          `json:"total"`
	Classes []ClassCount `json:"classes"`
}

// SimilarityGroupsResult ranks similarity group codes for one country.
// Present is false when the country or its group column is missing.
type SimilarityGroupsResult struct {
	Country string      `json:"country"`
	Present bool        `json:"present"`
	Groups  []TermCount `json:"groups"`
}

func countClasses(records []domain.FilingRecord, catalog *domain.ClassCatalog, n int) []ClassCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.ClassKey()]++
	}
	out := make([]ClassCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, ClassCount{ClassKey: key, Description: catalog.Describe(key), Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return compareClassKeys(out[i].ClassKey, out[j].ClassKey)
	})
	return limit(out, n)
}

// GlobalTopClasses ranks class keys over every filing.
func GlobalTopClasses(table *domain.FilingTable, catalog *domain.ClassCatalog, opts Options) []ClassCount {
	if table.IsEmpty() {
		return nil
	}
	return countClasses(table.Records, catalog, opts.GlobalTopN)
}

// ActiveCountries orders countries by filing volume, largest first.
// Ties keep first-appearance order.
func ActiveCountries(table *domain.FilingTable) []CountryClasses {
	groups := table.ByCountry()
	out := make([]CountryClasses, 0, len(groups))
	for _, country := range table.Countries() {
		out = append(out, CountryClasses{Country: country, Total: len(groups[country])})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// CountryTopClasses ranks the top classes of the ChartCountries most active countries.
func CountryTopClasses(table *domain.FilingTable, catalog *domain.ClassCatalog, opts Options) []CountryClasses {
	groups := table.ByCountry()
	active := limit(ActiveCountries(table), opts.ChartCountries)
	for i := range active {
		active[i].Classes = countClasses(groups[active[i].Country], catalog, opts.TopN)
	}
	return active
}

// SimilarityGroups ranks similarity group codes of opts.GroupCountry. The
// group field is split on '|', ',' and whitespace; single-character tokens
// are dropped.
func SimilarityGroups(table *domain.FilingTable, opts Options) SimilarityGroupsResult {
	result := SimilarityGroupsResult{Country: opts.GroupCountry}

	counts := make(map[string]int)
	for _, r := range table.ByCountry()[opts.GroupCountry] {
		if strings.TrimSpace(r.Group) == "" {
			continue
		}
		result.Present = true
		for _, tok := range groupSep.Split(r.Group, -1) {
			if utf8.RuneCountInString(tok) <= 1 {
				continue
			}
			counts[tok]++
		}
	}

	result.Groups = rankTerms(counts, opts.GlobalTopN)
	return result
}
