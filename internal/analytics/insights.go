package analytics

import (
	"fmt"
	"strings"

	"tmanalyzer/pkg/contracts/domain"
)

// BasicResult bundles the aggregations of the basic report.
type BasicResult struct {
	Rows        int               `json:"rows"`
	NullDates   int               `json:"null_dates"`
	Countries   []string          `json:"countries"`
	TimeSeries  TimeSeriesResult  `json:"time_series"`
	Categories  []CountryCategory `json:"categories"`
	Comparison  ComparisonResult  `json:"comparison"`
	Text        TextResult        `json:"text"`
	Growth      GrowthResult      `json:"growth"`
	Seasonality SeasonalityResult `json:"seasonality"`
}

// MarketResult bundles the aggregations of the market trend report.
type MarketResult struct {
	Rows              int                    `json:"rows"`
	GlobalTopClasses  []ClassCount           `json:"global_top_classes"`
	CountryTopClasses []CountryClasses       `json:"country_top_classes"`
	SimilarityGroups  SimilarityGroupsResult `json:"similarity_groups"`
	Trends            TrendsResult           `json:"trends"`
	Growth            GrowthResult           `json:"growth"`
	Seasonality       SeasonalityResult      `json:"seasonality"`
	Insights          []string               `json:"insights"`
}

// AnalyzeBasic runs the per-country statistics.
func AnalyzeBasic(table *domain.FilingTable, catalog *domain.ClassCatalog, opts Options) *BasicResult {
	return &BasicResult{
		Rows:        table.Len(),
		NullDates:   table.NullDates(),
		Countries:   table.Countries(),
		TimeSeries:  TimeSeries(table, opts),
		Categories:  Category(table, catalog),
		Comparison:  Comparison(table, catalog),
		Text:        Text(table, opts),
		Growth:      Growth(table, catalog, opts),
		Seasonality: Seasonality(table),
	}
}

// AnalyzeMarket runs the market-level statistics and derives the summary insights.
func AnalyzeMarket(table *domain.FilingTable, catalog *domain.ClassCatalog, opts Options) *MarketResult {
	result := &MarketResult{
		Rows:              table.Len(),
		GlobalTopClasses:  GlobalTopClasses(table, catalog, opts),
		CountryTopClasses: CountryTopClasses(table, catalog, opts),
		SimilarityGroups:  SimilarityGroups(table, opts),
		Trends:            RecentTrends(table, opts),
		Growth:            Growth(table, catalog, opts),
		Seasonality:       Seasonality(table),
	}
	result.Insights = Insights(result, catalog)
	return result
}

// Insights writes one sentence per available finding.
func Insights(m *MarketResult, catalog *domain.ClassCatalog) []string {
	var out []string

	if len(m.GlobalTopClasses) > 0 {
		top := limit(m.GlobalTopClasses, 3)
		labels := make([]string, len(top))
		for i, c := range top {
			labels[i] = catalog.Label(c.ClassKey)
		}
		out = append(out, fmt.Sprintf("가장 많이 출원된 분류: %s", strings.Join(labels, ", ")))
	}

	if len(m.CountryTopClasses) > 0 {
		lead := m.CountryTopClasses[0]
		out = append(out, fmt.Sprintf("출원이 가장 활발한 국가: %s (%d건)", lead.Country, lead.Total))
	}

	if !m.Growth.Skipped && len(m.Growth.Classes) > 0 {
		g := m.Growth.Classes[0]
		out = append(out, fmt.Sprintf("%d~%d년 가장 빠르게 성장한 분류: %s (연평균 %.1f%%)",
			m.Growth.StartYear, m.Growth.EndYear, catalog.Label(g.ClassKey), g.CAGR*100))
	}

	if peak := m.Seasonality.Peak(); peak > 0 {
		out = append(out, fmt.Sprintf("출원이 가장 많은 달: %d월 (%d건)", peak, m.Seasonality.Count(peak)))
	}

	if len(m.SimilarityGroups.Groups) > 0 {
		out = append(out, fmt.Sprintf("%s 최다 유사군 코드: %s (%d건)",
			m.SimilarityGroups.Country, m.SimilarityGroups.Groups[0].Term, m.SimilarityGroups.Groups[0].Count))
	}

	return out
}
