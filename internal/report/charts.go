package report

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"

	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"tmanalyzer/internal/analytics"
	apperrors "tmanalyzer/internal/errors"
	"tmanalyzer/pkg/contracts/domain"
)

// HotGrowthThreshold marks classes growing at least this fast in red.
const HotGrowthThreshold = 0.10

var (
	barBlue  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	barRed   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	barGreen = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// ChartRenderer draws the PNG charts of the market report.
type ChartRenderer struct {
	catalog  *domain.ClassCatalog
	typeface font.Typeface
	logger   *slog.Logger
}

// NewChartRenderer creates a renderer. When fontPath names a TrueType or
// OpenType file it is registered and used for every text element, which is
// how Hangul labels get real glyphs.
func NewChartRenderer(catalog *domain.ClassCatalog, fontPath string, logger *slog.Logger) (*ChartRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if catalog == nil {
		catalog = domain.DefaultClassCatalog()
	}
	r := &ChartRenderer{catalog: catalog, logger: logger}

	if fontPath != "" {
		tf, err := registerFont(fontPath)
		if err != nil {
			return nil, apperrors.NewRenderError("failed to load chart font", err).WithContext("font_path", fontPath)
		}
		r.typeface = tf
		logger.Debug("Chart font registered", slog.String("font_path", fontPath))
	}

	return r, nil
}

func registerFont(path string) (font.Typeface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	ttf, err := opentype.Parse(data)
	if err != nil {
		return "", err
	}
	tf := font.Typeface("tmanalyzer-" + strconv.Itoa(len(data)))
	font.DefaultCache.Add([]font.Face{{Font: font.Font{Typeface: tf}, Face: ttf}})
	return tf, nil
}

// newPlot creates a plot with the renderer's typeface applied.
func (r *ChartRenderer) newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Add(plotter.NewGrid())
	return p
}

func (r *ChartRenderer) applyFont(p *plot.Plot) {
	if r.typeface == "" {
		return
	}
	for _, f := range []*font.Font{
		&p.Title.TextStyle.Font,
		&p.X.Label.TextStyle.Font,
		&p.Y.Label.TextStyle.Font,
		&p.X.Tick.Label.Font,
		&p.Y.Tick.Label.Font,
		&p.Legend.TextStyle.Font,
	} {
		r.useTypeface(f)
	}
}

func (r *ChartRenderer) useTypeface(f *font.Font) {
	if r.typeface == "" {
		return
	}
	f.Typeface = r.typeface
	f.Variant = ""
}

func (r *ChartRenderer) labels(xys []plotter.XY, texts []string) (*plotter.Labels, error) {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		r.useTypeface(&labels.TextStyle[i].Font)
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	return labels, nil
}

// save writes p to w as a PNG of the given size.
func (r *ChartRenderer) save(p *plot.Plot, w io.Writer, width, height vg.Length) error {
	r.applyFont(p)
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return apperrors.NewRenderError("failed to render chart", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return apperrors.NewRenderError("failed to write chart", err)
	}
	return nil
}

// classTick formats a class key as a two-line tick label.
func (r *ChartRenderer) classTick(key string) string {
	code, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	return r.catalog.ChartLabel(code)
}

func (r *ChartRenderer) verticalBars(p *plot.Plot, values plotter.Values, c color.Color) error {
	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return apperrors.NewRenderError("failed to build bar chart", err)
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	return nil
}

// GlobalTopClasses draws the most filed classes across all countries.
func (r *ChartRenderer) GlobalTopClasses(w io.Writer, classes []analytics.ClassCount) error {
	if len(classes) == 0 {
		return apperrors.ErrEmptyChart
	}

	p := r.newPlot("전체 국가 통합 TOP 상품분류")
	p.X.Label.Text = "상품분류"
	p.Y.Label.Text = "출원 건수"

	values := make(plotter.Values, len(classes))
	ticks := make([]string, len(classes))
	xys := make([]plotter.XY, len(classes))
	texts := make([]string, len(classes))
	for i, c := range classes {
		values[i] = float64(c.Count)
		ticks[i] = r.classTick(c.ClassKey)
		xys[i] = plotter.XY{X: float64(i), Y: float64(c.Count)}
		texts[i] = strconv.Itoa(c.Count)
	}

	if err := r.verticalBars(p, values, barBlue); err != nil {
		return err
	}
	labels, err := r.labels(xys, texts)
	if err != nil {
		return apperrors.NewRenderError("failed to build labels", err)
	}
	p.Add(labels)
	p.NominalX(ticks...)
	p.Y.Min = 0
	p.Y.Max = maxFloat(values) * 1.15

	return r.save(p, w, 14*vg.Inch, 8*vg.Inch)
}

// horizontalBars builds a ranked horizontal bar plot, largest at the top.
func (r *ChartRenderer) horizontalBars(title string, names []string, counts []int, c color.Color) (*plot.Plot, error) {
	n := len(counts)
	values := make(plotter.Values, n)
	ticks := make([]string, n)
	for i := range counts {
		values[n-1-i] = float64(counts[i])
		ticks[n-1-i] = names[i]
	}

	p := r.newPlot(title)
	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, apperrors.NewRenderError("failed to build bar chart", err)
	}
	bars.Horizontal = true
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(ticks...)
	p.X.Min = 0
	p.X.Label.Text = "출원 건수"
	return p, nil
}

// CountryTopClasses tiles one horizontal bar chart per country.
func (r *ChartRenderer) CountryTopClasses(w io.Writer, countries []analytics.CountryClasses) error {
	var plots []*plot.Plot
	for _, cc := range countries {
		if len(cc.Classes) == 0 {
			continue
		}
		names := make([]string, len(cc.Classes))
		counts := make([]int, len(cc.Classes))
		for i, c := range cc.Classes {
			names[i] = r.catalog.Label(c.ClassKey)
			counts[i] = c.Count
		}
		p, err := r.horizontalBars(fmt.Sprintf("%s TOP %d 상품분류", cc.Country, len(counts)), names, counts, plotutil.Color(len(plots)))
		if err != nil {
			return err
		}
		r.applyFont(p)
		plots = append(plots, p)
	}
	if len(plots) == 0 {
		return apperrors.ErrEmptyChart
	}

	cols := 2
	if len(plots) > 4 {
		cols = 3
	}
	if len(plots) == 1 {
		cols = 1
	}
	rows := (len(plots) + cols - 1) / cols

	filler := plot.New()
	filler.HideAxes()
	grid := make([][]*plot.Plot, rows)
	for i := range grid {
		grid[i] = make([]*plot.Plot, cols)
		for j := range grid[i] {
			grid[i][j] = filler
		}
	}
	for i, p := range plots {
		grid[i/cols][i%cols] = p
	}

	width, height := vg.Length(cols)*8*vg.Inch, vg.Length(rows)*5*vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		for j, p := range grid[i] {
			p.Draw(canvases[i][j])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return apperrors.NewRenderError("failed to write chart", err)
	}
	return nil
}

// SimilarityGroups draws the most frequent similarity group codes.
func (r *ChartRenderer) SimilarityGroups(w io.Writer, groups analytics.SimilarityGroupsResult) error {
	if len(groups.Groups) == 0 {
		return apperrors.ErrEmptyChart
	}

	names := make([]string, len(groups.Groups))
	counts := make([]int, len(groups.Groups))
	for i, g := range groups.Groups {
		names[i] = g.Term
		counts[i] = g.Count
	}

	p, err := r.horizontalBars(fmt.Sprintf("%s TOP %d 유사군 코드", groups.Country, len(counts)), names, counts, barGreen)
	if err != nil {
		return err
	}
	return r.save(p, w, 10*vg.Inch, 7*vg.Inch)
}

// Trends draws one line per country over the recent years.
func (r *ChartRenderer) Trends(w io.Writer, trends analytics.TrendsResult) error {
	if trends.Empty() {
		return apperrors.ErrEmptyChart
	}

	p := r.newPlot(fmt.Sprintf("최근 %d년 국가별 출원 동향", len(trends.Years)))
	p.X.Label.Text = "연도"
	p.Y.Label.Text = "출원 건수"
	p.Legend.Top = true
	p.X.Tick.Marker = yearTicks(trends.Years)

	for j, country := range trends.Countries {
		series := trends.Series(country)
		xys := make(plotter.XYs, len(series))
		for i, n := range series {
			xys[i] = plotter.XY{X: float64(trends.Years[i]), Y: float64(n)}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return apperrors.NewRenderError("failed to build trend line", err)
		}
		line.Color = plotutil.Color(j)
		line.Width = vg.Points(2)
		points.GlyphStyle.Color = plotutil.Color(j)
		points.GlyphStyle.Shape = plotutil.Shape(j)
		p.Add(line, points)
		p.Legend.Add(country, line, points)
	}
	p.Y.Min = 0

	return r.save(p, w, 12*vg.Inch, 7*vg.Inch)
}

// PromisingFields draws the class growth ranking. Classes at or above
// HotGrowthThreshold are red, the rest blue.
func (r *ChartRenderer) PromisingFields(w io.Writer, growth analytics.GrowthResult) error {
	if growth.Skipped || len(growth.Classes) == 0 {
		return apperrors.ErrEmptyChart
	}

	n := len(growth.Classes)
	hot := make(plotter.Values, n)
	cool := make(plotter.Values, n)
	ticks := make([]string, n)
	xys := make([]plotter.XY, n)
	texts := make([]string, n)
	lo, hi := 0.0, 0.0
	for i, c := range growth.Classes {
		pct := c.CAGR * 100
		if c.CAGR >= HotGrowthThreshold {
			hot[i] = pct
		} else {
			cool[i] = pct
		}
		ticks[i] = r.classTick(c.ClassKey)
		xys[i] = plotter.XY{X: float64(i), Y: pct}
		texts[i] = fmt.Sprintf("%.1f%%", pct)
		lo, hi = math.Min(lo, pct), math.Max(hi, pct)
	}

	p := r.newPlot(fmt.Sprintf("유망 분야: 상품분류별 연평균 성장률 (%d~%d)", growth.StartYear, growth.EndYear))
	p.X.Label.Text = "상품분류"
	p.Y.Label.Text = "CAGR (%)"

	if err := r.verticalBars(p, hot, barRed); err != nil {
		return err
	}
	if err := r.verticalBars(p, cool, barBlue); err != nil {
		return err
	}
	labels, err := r.labels(xys, texts)
	if err != nil {
		return apperrors.NewRenderError("failed to build labels", err)
	}
	p.Add(labels)
	p.NominalX(ticks...)

	span := hi - lo
	if span == 0 {
		span = 1
	}
	p.Y.Min = lo - span*0.1
	if p.Y.Min > 0 {
		p.Y.Min = 0
	}
	p.Y.Max = hi + span*0.15

	return r.save(p, w, 12*vg.Inch, 7*vg.Inch)
}

// Seasonality draws the monthly filing line and annotates the peak month.
func (r *ChartRenderer) Seasonality(w io.Writer, season analytics.SeasonalityResult) error {
	if season.Empty() {
		return apperrors.ErrEmptyChart
	}

	xys := make(plotter.XYs, 12)
	for m := 1; m <= 12; m++ {
		xys[m-1] = plotter.XY{X: float64(m), Y: float64(season.Count(m))}
	}

	p := r.newPlot("월별 출원 추이")
	p.X.Label.Text = "월"
	p.Y.Label.Text = "출원 건수"
	p.X.Tick.Marker = monthTicks{}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return apperrors.NewRenderError("failed to build seasonality line", err)
	}
	line.Color = barBlue
	line.Width = vg.Points(2)
	points.GlyphStyle.Color = barBlue
	p.Add(line, points)

	peak := season.Peak()
	peakY := float64(season.Count(peak))
	labels, err := r.labels(
		[]plotter.XY{{X: float64(peak), Y: peakY * 1.05}},
		[]string{fmt.Sprintf("Peak: %d월 (%d건)", peak, season.Count(peak))},
	)
	if err != nil {
		return apperrors.NewRenderError("failed to build peak label", err)
	}
	labels.TextStyle[0].Color = barRed
	p.Add(labels)

	p.X.Min, p.X.Max = 0.5, 12.5
	p.Y.Min = 0
	p.Y.Max = peakY * 1.2

	return r.save(p, w, 12*vg.Inch, 6*vg.Inch)
}

// monthTicks labels the x axis 1월..12월.
type monthTicks struct{}

func (monthTicks) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, 12)
	for m := 1; m <= 12; m++ {
		ticks = append(ticks, plot.Tick{Value: float64(m), Label: fmt.Sprintf("%d월", m)})
	}
	return ticks
}

// yearTicks labels every observed year.
func yearTicks(years []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(years))
	for i, y := range years {
		ticks[i] = plot.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	return ticks
}

func maxFloat(values plotter.Values) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	if m == 0 {
		return 1
	}
	return m
}
