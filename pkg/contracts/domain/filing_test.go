package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilingRecord_DerivedFields(t *testing.T) {
	r := FilingRecord{
		Country:    "한국",
		FilingDate: date(2021, time.March, 4),
		ClassCode:  35,
		Name:       "Blue (Sky) Mark",
		Goods:      "Shoes, Bags//Hats\nCaps",
	}

	year, ok := r.Year()
	require.True(t, ok)
	assert.Equal(t, 2021, year)

	month, ok := r.Month()
	require.True(t, ok)
	assert.Equal(t, 3, month)

	assert.Equal(t, "35", r.ClassKey())
	assert.Equal(t, 11, r.NameLength())
	assert.Equal(t, 4, r.GoodsCount())
}

func TestFilingRecord_NullDate(t *testing.T) {
	r := FilingRecord{Country: "미국"}

	_, ok := r.Year()
	assert.False(t, ok)
	_, ok = r.Month()
	assert.False(t, ok)
	assert.Equal(t, FallbackClassLabel, r.ClassKey())
	assert.Equal(t, 1, r.GoodsCount(), "empty goods text counts as a single item")
}

func TestFilingTable_Grouping(t *testing.T) {
	table := NewFilingTable(nil)
	table.Append(
		FilingRecord{Country: "한국", FilingDate: date(2020, 1, 1)},
		FilingRecord{Country: "미국"},
		FilingRecord{Country: "한국", FilingDate: date(2021, 1, 1)},
	)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"한국", "미국"}, table.Countries())
	assert.Len(t, table.ByCountry()["한국"], 2)
	assert.Equal(t, 1, table.NullDates())
	assert.Len(t, table.Dated(), 2)

	var nilTable *FilingTable
	assert.True(t, nilTable.IsEmpty())
	assert.Empty(t, nilTable.Countries())
}

func TestClassCatalog(t *testing.T) {
	catalog := DefaultClassCatalog()

	tests := []struct {
		name      string
		key       string
		wantLong  string
		wantShort string
	}{
		{name: "known class", key: "9", wantLong: "과학/전자/컴퓨터 하드웨어 및 소프트웨어", wantShort: "과학/전자/SW"},
		{name: "fallback bucket", key: FallbackClassLabel, wantLong: "기타 분류", wantShort: "기타"},
		{name: "unmapped class", key: "13", wantLong: NoDescription, wantShort: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLong, catalog.Describe(tt.key))
			assert.Equal(t, tt.wantShort, catalog.ShortDescribe(tt.key))
		})
	}

	assert.Equal(t, "35 (광고/경영관리)", catalog.Label("35"))
	assert.Equal(t, "9류\n(과학/전자/SW)", catalog.ChartLabel(9))
	assert.Equal(t, "13류", catalog.ChartLabel(13))
}

func TestClassCatalog_IsImmutableCopy(t *testing.T) {
	source := map[string]string{"1": "chemicals"}
	catalog := NewClassCatalog(source, nil)
	source["1"] = "changed"
	source["2"] = "paints"

	assert.Equal(t, "chemicals", catalog.Describe("1"))
	assert.False(t, catalog.Has("2"))
	assert.Equal(t, "chemicals", catalog.ShortDescribe("1"))
}
