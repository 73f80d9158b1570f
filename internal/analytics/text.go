package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"tmanalyzer/pkg/contracts/domain"
)

var (
	nonAlnum        = regexp.MustCompile(`[^a-z0-9\s]`)
	goodsKeywordSep = regexp.MustCompile(`[/,\n]+`)
)

// NameLengthStats summarizes trademark name lengths of one country.
type NameLengthStats struct {
	Country string  `json:"country"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// TermCount is a token with its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// CountryTerms is a ranked keyword list for one country. An empty list means
// there was not enough text to rank.
type CountryTerms struct {
	Country string      `json:"country"`
	Terms   []TermCount `json:"terms"`
}

// TextResult holds the name and goods text statistics.
type TextResult struct {
	NameLengths   []NameLengthStats `json:"name_lengths"`
	NameTokens    []CountryTerms    `json:"name_tokens"`
	GoodsKeywords []CountryTerms    `json:"goods_keywords"`
}

// Text computes name length statistics, name token frequencies and goods
// keyword frequencies per country.
func Text(table *domain.FilingTable, opts Options) TextResult {
	var result TextResult
	if table.IsEmpty() {
		return result
	}

	stop := opts.stopWords()
	groups := table.ByCountry()
	for _, country := range table.Countries() {
		rows := groups[country]
		result.NameLengths = append(result.NameLengths, nameLengthStats(country, rows))
		result.NameTokens = append(result.NameTokens, CountryTerms{
			Country: country,
			Terms:   rankTerms(nameTokenCounts(rows, stop, opts.MinNameTokenLen), opts.KeywordTopN),
		})
		result.GoodsKeywords = append(result.GoodsKeywords, CountryTerms{
			Country: country,
			Terms:   rankTerms(goodsKeywordCounts(rows, stop, opts.MinGoodsKeywordLen), opts.KeywordTopN),
		})
	}

	sort.SliceStable(result.NameLengths, func(i, j int) bool {
		return result.NameLengths[i].Mean > result.NameLengths[j].Mean
	})

	return result
}

func nameLengthStats(country string, rows []domain.FilingRecord) NameLengthStats {
	lengths := make([]int, len(rows))
	sum := 0
	for i, r := range rows {
		lengths[i] = r.NameLength()
		sum += lengths[i]
	}
	sort.Ints(lengths)

	n := len(lengths)
	median := float64(lengths[n/2])
	if n%2 == 0 {
		median = float64(lengths[n/2-1]+lengths[n/2]) / 2
	}

	return NameLengthStats{
		Country: country,
		Count:   n,
		Mean:    float64(sum) / float64(n),
		Median:  median,
		Min:     lengths[0],
		Max:     lengths[n-1],
	}
}

// NameTokens lower-cases a trademark name, drops everything but ASCII
// letters, digits and whitespace, and splits on whitespace.
func NameTokens(name string) []string {
	return strings.Fields(nonAlnum.ReplaceAllString(strings.ToLower(name), ""))
}

// GoodsKeywords splits designated-goods text into lower-cased, trimmed items.
func GoodsKeywords(goods string) []string {
	var out []string
	for _, item := range goodsKeywordSep.Split(strings.ToLower(goods), -1) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func nameTokenCounts(rows []domain.FilingRecord, stop map[string]bool, minLen int) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		for _, tok := range NameTokens(r.Name) {
			if len(tok) < minLen || stop[tok] {
				continue
			}
			counts[tok]++
		}
	}
	return counts
}

func goodsKeywordCounts(rows []domain.FilingRecord, stop map[string]bool, minLen int) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		for _, kw := range GoodsKeywords(r.Goods) {
			if utf8.RuneCountInString(kw) < minLen || stop[kw] {
				continue
			}
			counts[kw]++
		}
	}
	return counts
}

// rankTerms sorts by count desc, then alphabetically, and keeps the first n.
func rankTerms(counts map[string]int, n int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	return limit(terms, n)
}
