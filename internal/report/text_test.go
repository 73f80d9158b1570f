package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmanalyzer/internal/analytics"
	"tmanalyzer/pkg/contracts/domain"
)

func day(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleTable() *domain.FilingTable {
	perYear := map[int]int{2016: 10, 2017: 12, 2018: 14, 2019: 17, 2020: 20}

	var records []domain.FilingRecord
	for year := 2016; year <= 2020; year++ {
		for i := 0; i < perYear[year]; i++ {
			records = append(records,
				domain.FilingRecord{Country: "한국", FilingDate: day(year, 1+i%12, 1), ClassCode: 9, Name: "Blue Sky", Goods: "Shoes, Bags", Group: "G0301|G1201"},
				domain.FilingRecord{Country: "미국", FilingDate: day(year, 3, 1), ClassCode: 35, Name: "Ocean Wave", Goods: "Advertising"},
			)
		}
	}
	records = append(records, domain.FilingRecord{Country: "미국", ClassCode: 0, Name: domain.NamePlaceholder})
	return domain.NewFilingTable(records)
}

func testMeta() Meta {
	return Meta{
		RunID:        "run-1",
		GeneratedAt:  time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		DataDir:      "/data",
		Files:        2,
		Failures:     []string{"broken.xlsx (read)"},
		Placeholders: 1,
	}
}

func TestTextReporter_WriteBasic(t *testing.T) {
	catalog := domain.DefaultClassCatalog()
	res := analytics.AnalyzeBasic(sampleTable(), catalog, analytics.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(catalog, 5).WriteBasic(&buf, res, testMeta()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "상표 출원 기초 통계 분석\n"))
	assert.Contains(t, out, "생성 시각: 2024-05-01 09:30:00")
	assert.Contains(t, out, Warning+" 건너뛴 파일: broken.xlsx (read)")
	assert.Contains(t, out, "출원일을 해석할 수 없는 행 1건")
	assert.Contains(t, out, "국가별 연평균 성장률 (2016~2020)")
	assert.Contains(t, out, "18.92%", "doubling of the window yields the CAGR of 2^(1/4)")
	assert.Contains(t, out, "shoes")
	assert.NotContains(t, out, "관측된 연도가")
	assert.Contains(t, out, "35 (광고/경영관리)", "diversity lists classes with descriptions")

	for _, title := range []string{"1. 국가별 연도별 출원 추이", "2. 국가별 상품분류 비중", "3. 국가별 포트폴리오 비교",
		"4. 상표명 분석", "5. 지정상품 키워드", "6. 유망 분야", "7. 월별 출원 추이"} {
		assert.Contains(t, out, title)
	}
}

func TestTextReporter_WriteMarket(t *testing.T) {
	catalog := domain.DefaultClassCatalog()
	res := analytics.AnalyzeMarket(sampleTable(), catalog, analytics.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(catalog, 5).WriteMarket(&buf, res, testMeta()))
	out := buf.String()

	assert.Contains(t, out, "상표 출원 시장 동향 분석")
	assert.Contains(t, out, "9 (과학/전자/컴퓨터 하드웨어 및 소프트웨어)")
	assert.Contains(t, out, "G0301")
	assert.Contains(t, out, "7. 요약 인사이트")
	assert.Contains(t, out, "종료 연도 출원 건수 기준을 넘는 분류가 없습니다.")
}

func TestTextReporter_EmptySections(t *testing.T) {
	catalog := domain.DefaultClassCatalog()
	table := domain.NewFilingTable([]domain.FilingRecord{{Country: "미국", Name: "x"}})
	opts := analytics.DefaultOptions()

	var buf bytes.Buffer
	reporter := NewTextReporter(catalog, 5)
	require.NoError(t, reporter.WriteBasic(&buf, analytics.AnalyzeBasic(table, catalog, opts), Meta{}))
	require.NoError(t, reporter.WriteMarket(&buf, analytics.AnalyzeMarket(table, catalog, opts), Meta{}))
	out := buf.String()

	assert.Contains(t, out, Warning+" 유효한 출원일 데이터가 없습니다.")
	assert.Contains(t, out, Warning+" 데이터 부족")
	assert.Contains(t, out, Warning+" 관측된 연도가 0개뿐이라 성장률 분석을 건너뜁니다.")
	assert.Contains(t, out, Warning+" 한국 데이터에 유사군 코드가 없습니다.")
}

func TestTextReporter_WriteNoData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(nil, 0).WriteNoData(&buf, "상표 출원 기초 통계 분석", Meta{Files: 0}))

	out := buf.String()
	assert.Contains(t, out, "불러온 파일: 0개")
	assert.Contains(t, out, Warning+" 분석할 데이터가 없습니다.")
	assert.NotContains(t, out, "1. ")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestTextReporter_WriteError(t *testing.T) {
	catalog := domain.DefaultClassCatalog()
	res := analytics.AnalyzeBasic(sampleTable(), catalog, analytics.DefaultOptions())

	err := NewTextReporter(catalog, 5).WriteBasic(failingWriter{}, res, testMeta())
	assert.ErrorIs(t, err, assert.AnError)
}
