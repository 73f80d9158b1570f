package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"tmanalyzer/internal/analytics"
	"tmanalyzer/pkg/contracts/domain"
)

// Meta describes the run that produced a report.
type Meta struct {
	RunID       string
	GeneratedAt time.Time
	DataDir     string
	Files       int
	Failures    []string
	// Placeholders counts rows whose missing name was replaced.
	Placeholders int
}

// TextReporter formats analysis results as plain UTF-8 text tables.
type TextReporter struct {
	catalog *domain.ClassCatalog
	topN    int
}

// NewTextReporter creates a text reporter. topN caps the per-country rankings.
func NewTextReporter(catalog *domain.ClassCatalog, topN int) *TextReporter {
	if catalog == nil {
		catalog = domain.DefaultClassCatalog()
	}
	if topN <= 0 {
		topN = 5
	}
	return &TextReporter{catalog: catalog, topN: topN}
}

// Warning prefixes lines that flag a missing or insufficient section.
const Warning = "[경고]"

// sectionWriter accumulates the first write error so sections read linearly.
type sectionWriter struct {
	w   *bufio.Writer
	err error
}

func (s *sectionWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *sectionWriter) section(n int, title string) {
	s.printf("\n%s\n%d. %s\n%s\n", strings.Repeat("=", 60), n, title, strings.Repeat("=", 60))
}

func (s *sectionWriter) warn(msg string) {
	s.printf("%s %s\n", Warning, msg)
}

// table writes tab-separated rows aligned in columns.
func (s *sectionWriter) table(header []string, rows [][]string) {
	if s.err != nil {
		return
	}
	tw := tabwriter.NewWriter(s.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	s.err = tw.Flush()
}

func (s *sectionWriter) flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

func (s *sectionWriter) header(title string, meta Meta) {
	s.printf("%s\n", title)
	s.printf("생성 시각: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	if meta.RunID != "" {
		s.printf("실행 ID: %s\n", meta.RunID)
	}
	if meta.DataDir != "" {
		s.printf("데이터 폴더: %s\n", meta.DataDir)
	}
	s.printf("불러온 파일: %d개\n", meta.Files)
	for _, f := range meta.Failures {
		s.warn("건너뛴 파일: " + f)
	}
	if meta.Placeholders > 0 {
		s.printf("상표명칭이 없는 %d건은 %s(으)로 표시했습니다.\n", meta.Placeholders, domain.NamePlaceholder)
	}
}

// WriteNoData writes only the header and a warning that no data was found.
func (r *TextReporter) WriteNoData(w io.Writer, title string, meta Meta) error {
	s := &sectionWriter{w: bufio.NewWriter(w)}
	s.header(title, meta)
	s.printf("\n")
	s.warn("분석할 데이터가 없습니다. 데이터 폴더에 .xlsx 파일이 있는지 확인하세요.")
	return s.flush()
}

// WriteBasic writes the basic statistics report.
func (r *TextReporter) WriteBasic(w io.Writer, res *analytics.BasicResult, meta Meta) error {
	s := &sectionWriter{w: bufio.NewWriter(w)}
	s.header("상표 출원 기초 통계 분석", meta)
	s.printf("전체 출원: %d건 (국가 %d개)\n", res.Rows, len(res.Countries))
	if res.NullDates > 0 {
		s.warn(fmt.Sprintf("출원일을 해석할 수 없는 행 %d건은 시계열 분석에서 제외되었습니다.", res.NullDates))
	}

	r.writeTimeSeries(s, res.TimeSeries)
	r.writeCategories(s, res.Categories)
	r.writeComparison(s, res.Comparison)
	r.writeText(s, res.Text)
	r.writeGrowth(s, 6, res.Growth)
	r.writeSeasonality(s, 7, res.Seasonality)

	return s.flush()
}

// WriteMarket writes the market trend report including the summary insights.
func (r *TextReporter) WriteMarket(w io.Writer, res *analytics.MarketResult, meta Meta) error {
	s := &sectionWriter{w: bufio.NewWriter(w)}
	s.header("상표 출원 시장 동향 분석", meta)
	s.printf("전체 출원: %d건\n", res.Rows)

	s.section(1, "전체 국가 통합 TOP 상품분류")
	if len(res.GlobalTopClasses) == 0 {
		s.warn("상품분류 데이터가 없습니다.")
	} else {
		rows := make([][]string, len(res.GlobalTopClasses))
		for i, c := range res.GlobalTopClasses {
			rows[i] = []string{itoa(i + 1), c.ClassKey, c.Description, itoa(c.Count)}
		}
		s.table([]string{"순위", "분류", "설명", "건수"}, rows)
	}

	s.section(2, "국가별 TOP 상품분류 (출원이 많은 국가 순)")
	if len(res.CountryTopClasses) == 0 {
		s.warn("국가 데이터가 없습니다.")
	}
	for _, cc := range res.CountryTopClasses {
		s.printf("\n[%s] 총 %d건\n", cc.Country, cc.Total)
		rows := make([][]string, len(cc.Classes))
		for i, c := range cc.Classes {
			rows[i] = []string{itoa(i + 1), r.catalog.Label(c.ClassKey), itoa(c.Count)}
		}
		s.table([]string{"순위", "분류", "건수"}, rows)
	}

	s.section(3, fmt.Sprintf("%s 유사군 코드 TOP", res.SimilarityGroups.Country))
	switch {
	case !res.SimilarityGroups.Present:
		s.warn(fmt.Sprintf("%s 데이터에 유사군 코드가 없습니다.", res.SimilarityGroups.Country))
	case len(res.SimilarityGroups.Groups) == 0:
		s.warn("유효한 유사군 코드가 없습니다.")
	default:
		rows := make([][]string, len(res.SimilarityGroups.Groups))
		for i, g := range res.SimilarityGroups.Groups {
			rows[i] = []string{itoa(i + 1), g.Term, itoa(g.Count)}
		}
		s.table([]string{"순위", "유사군", "건수"}, rows)
	}

	s.section(4, "최근 연도별 국가 출원 동향")
	if res.Trends.Empty() {
		s.warn("유효한 출원일 데이터가 없습니다.")
	} else {
		rows := make([][]string, len(res.Trends.Years))
		for i, year := range res.Trends.Years {
			row := []string{itoa(year)}
			for _, n := range res.Trends.Counts[i] {
				row = append(row, itoa(n))
			}
			rows[i] = row
		}
		s.table(append([]string{"연도"}, res.Trends.Countries...), rows)
	}

	r.writeGrowth(s, 5, res.Growth)
	r.writeSeasonality(s, 6, res.Seasonality)

	s.section(7, "요약 인사이트")
	if len(res.Insights) == 0 {
		s.warn("도출할 인사이트가 없습니다.")
	}
	for _, line := range res.Insights {
		s.printf("- %s\n", line)
	}

	return s.flush()
}

func (r *TextReporter) writeTimeSeries(s *sectionWriter, ts analytics.TimeSeriesResult) {
	s.section(1, "국가별 연도별 출원 추이")
	if ts.IsEmpty() {
		s.warn("유효한 출원일 데이터가 없습니다.")
		return
	}

	for _, cy := range ts.TopYears {
		s.printf("\n[%s] 출원이 많은 연도 TOP %d\n", cy.Country, len(cy.Years))
		rows := make([][]string, len(cy.Years))
		for i, y := range cy.Years {
			rows[i] = []string{itoa(y.Year), itoa(y.Count)}
		}
		s.table([]string{"연도", "건수"}, rows)
	}

	s.printf("\n국가별 연평균 성장률 (%d~%d)\n", ts.WindowStart, ts.WindowEnd)
	if len(ts.CAGR) == 0 {
		s.warn("시작 연도와 종료 연도 데이터를 모두 가진 국가가 없어 CAGR을 계산할 수 없습니다.")
		return
	}
	rows := make([][]string, len(ts.CAGR))
	for i, c := range ts.CAGR {
		rows[i] = []string{c.Country, itoa(c.StartCount), itoa(c.EndCount), pct(c.CAGR * 100)}
	}
	s.table([]string{"국가", itoa(ts.WindowStart), itoa(ts.WindowEnd), "CAGR"}, rows)
}

func (r *TextReporter) writeCategories(s *sectionWriter, cats []analytics.CountryCategory) {
	s.section(2, "국가별 상품분류 비중")
	if len(cats) == 0 {
		s.warn("상품분류 데이터가 없습니다.")
		return
	}
	for _, cc := range cats {
		s.printf("\n[%s] 총 %d건, TOP %d\n", cc.Country, cc.Total, r.topN)
		top := cc.Top(r.topN)
		rows := make([][]string, len(top))
		for i, sh := range top {
			rows[i] = []string{sh.ClassKey, sh.Description, itoa(sh.Count), pct(sh.Share)}
		}
		s.table([]string{"분류", "설명", "건수", "비중"}, rows)
	}
}

func (r *TextReporter) writeComparison(s *sectionWriter, cmp analytics.ComparisonResult) {
	s.section(3, "국가별 포트폴리오 비교")
	if len(cmp.Diversity) == 0 {
		s.warn("비교할 국가 데이터가 없습니다.")
		return
	}

	s.printf("\n상품분류 다양성\n")
	rows := make([][]string, len(cmp.Diversity))
	for i, d := range cmp.Diversity {
		rows[i] = []string{d.Country, itoa(d.Count), strings.Join(d.Labels, ", ")}
	}
	s.table([]string{"국가", "분류 수", "분류"}, rows)

	s.printf("\n출원당 평균 지정상품 수\n")
	rows = make([][]string, len(cmp.GoodsAverages))
	for i, g := range cmp.GoodsAverages {
		rows[i] = []string{g.Country, itoa(g.Filings), fmt.Sprintf("%.2f", g.Mean)}
	}
	s.table([]string{"국가", "출원 수", "평균"}, rows)
}

func (r *TextReporter) writeText(s *sectionWriter, text analytics.TextResult) {
	s.section(4, "상표명 분석")
	if len(text.NameLengths) == 0 {
		s.warn("상표명 데이터가 없습니다.")
		return
	}

	s.printf("\n상표명 길이 (공백과 괄호 제외)\n")
	rows := make([][]string, len(text.NameLengths))
	for i, n := range text.NameLengths {
		rows[i] = []string{n.Country, fmt.Sprintf("%.2f", n.Mean), fmt.Sprintf("%.1f", n.Median), itoa(n.Min), itoa(n.Max)}
	}
	s.table([]string{"국가", "평균", "중앙값", "최소", "최대"}, rows)

	s.printf("\n상표명 키워드\n")
	writeTerms(s, text.NameTokens)

	s.section(5, "지정상품 키워드")
	writeTerms(s, text.GoodsKeywords)
}

func writeTerms(s *sectionWriter, terms []analytics.CountryTerms) {
	for _, ct := range terms {
		s.printf("\n[%s]\n", ct.Country)
		if len(ct.Terms) == 0 {
			s.warn("데이터 부족")
			continue
		}
		rows := make([][]string, len(ct.Terms))
		for i, t := range ct.Terms {
			rows[i] = []string{itoa(i + 1), t.Term, itoa(t.Count)}
		}
		s.table([]string{"순위", "키워드", "빈도"}, rows)
	}
}

func (r *TextReporter) writeGrowth(s *sectionWriter, n int, g analytics.GrowthResult) {
	s.section(n, "유망 분야: 상품분류별 연평균 성장률")
	if g.Skipped {
		s.warn(fmt.Sprintf("관측된 연도가 %d개뿐이라 성장률 분석을 건너뜁니다.", len(g.Years)))
		return
	}
	s.printf("기간: %d~%d\n", g.StartYear, g.EndYear)
	if len(g.Classes) == 0 {
		s.warn("종료 연도 출원 건수 기준을 넘는 분류가 없습니다.")
		return
	}
	rows := make([][]string, len(g.Classes))
	for i, c := range g.Classes {
		rows[i] = []string{itoa(i + 1), r.catalog.Label(c.ClassKey), itoa(c.StartCount), itoa(c.EndCount), pct(c.CAGR * 100)}
	}
	s.table([]string{"순위", "분류", itoa(g.StartYear), itoa(g.EndYear), "CAGR"}, rows)
}

func (r *TextReporter) writeSeasonality(s *sectionWriter, n int, season analytics.SeasonalityResult) {
	s.section(n, "월별 출원 추이")
	if season.Empty() {
		s.warn("유효한 출원일 데이터가 없습니다.")
		return
	}
	rows := make([][]string, 12)
	for m := 1; m <= 12; m++ {
		rows[m-1] = []string{fmt.Sprintf("%d월", m), itoa(season.Count(m))}
	}
	s.table([]string{"월", "건수"}, rows)
	peak := season.Peak()
	s.printf("가장 출원이 많은 달: %d월 (%d건)\n", peak, season.Count(peak))
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
