package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmanalyzer/pkg/contracts/domain"
)

func TestCategory_SharesSumToHundred(t *testing.T) {
	records := []domain.FilingRecord{
		filing("한국", day(2020, 1, 1), 9),
		filing("한국", day(2020, 2, 1), 9),
		filing("한국", nil, 35),
		filing("한국", day(2020, 3, 1), 0),
		filing("미국", day(2021, 1, 1), 13),
		filing("미국", day(2021, 1, 2), 25),
		filing("미국", day(2021, 1, 3), 25),
	}
	catalog := domain.DefaultClassCatalog()

	result := Category(domain.NewFilingTable(records), catalog)
	require.Len(t, result, 2)

	for _, c := range result {
		var sum float64
		for _, s := range c.Shares {
			sum += s.Share
		}
		assert.InDelta(t, 100, sum, 1e-9, c.Country)
	}

	korea := result[0]
	assert.Equal(t, "한국", korea.Country)
	assert.Equal(t, 4, korea.Total)
	assert.Equal(t, "9", korea.Shares[0].ClassKey)
	assert.InDelta(t, 50, korea.Shares[0].Share, 1e-9)
	assert.Equal(t, "35", korea.Shares[1].ClassKey, "ties are broken by class key")
	assert.Equal(t, domain.FallbackClassLabel, korea.Shares[2].ClassKey)

	us := result[1]
	assert.Equal(t, "25", us.Shares[0].ClassKey)
	assert.Equal(t, domain.NoDescription, us.Shares[1].Description)
	assert.Len(t, us.Top(1), 1)
	assert.Len(t, us.Top(10), 2)
}

func TestCategory_Empty(t *testing.T) {
	assert.Empty(t, Category(domain.NewFilingTable(nil), domain.DefaultClassCatalog()))
}

func TestComparison(t *testing.T) {
	records := []domain.FilingRecord{
		{Country: "한국", ClassCode: 9, Goods: "a, b, c"},
		{Country: "한국", ClassCode: 9, Goods: "a"},
		{Country: "미국", ClassCode: 9, Goods: "a//b"},
		{Country: "미국", ClassCode: 35, Goods: "a\nb\nc\nd"},
		{Country: "미국", ClassCode: 0, Goods: ""},
	}

	result := Comparison(domain.NewFilingTable(records), domain.DefaultClassCatalog())

	require.Len(t, result.Diversity, 2)
	assert.Equal(t, "미국", result.Diversity[0].Country)
	assert.Equal(t, 3, result.Diversity[0].Count)
	assert.Equal(t, []string{"9", "35", domain.FallbackClassLabel}, result.Diversity[0].Classes)
	assert.Equal(t, "35 (광고/경영관리)", result.Diversity[0].Labels[1])

	require.Len(t, result.GoodsAverages, 2)
	assert.Equal(t, "미국", result.GoodsAverages[0].Country)
	assert.InDelta(t, 7.0/3.0, result.GoodsAverages[0].Mean, 1e-9)
	assert.Equal(t, "한국", result.GoodsAverages[1].Country)
	assert.InDelta(t, 2.0, result.GoodsAverages[1].Mean, 1e-9)
}
