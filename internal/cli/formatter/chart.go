package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// NoDataMessage is shown in place of a chart built from no records.
const NoDataMessage = "No data available for the selected filters."

const (
	defaultChartWidth = 60
	minBarWidth       = 4
	maxSparkCell      = 4
)

type chartConfig struct {
	format func(float64) string
}

// ChartOption customises RenderChart.
type ChartOption func(*chartConfig)

// WithValueFormat sets how bar totals, pie values and table cells print.
func WithValueFormat(fn func(float64) string) ChartOption {
	return func(c *chartConfig) {
		if fn != nil {
			c.format = fn
		}
	}
}

func newChartConfig(opts []ChartOption) chartConfig {
	cfg := chartConfig{format: FormatNumber}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// RenderChart draws c as bar, pie or line text within width columns.
// Unknown styles render as bars.
func RenderChart(c analytics.Chart, style domain.ChartStyle, width int, opts ...ChartOption) string {
	if c.NoData() {
		return Dim(NoDataMessage)
	}
	if width <= 0 {
		width = defaultChartWidth
	}
	cfg := newChartConfig(opts)

	switch style {
	case domain.ChartPie:
		return renderPie(c, width, cfg)
	case domain.ChartLine:
		return renderLine(c, width, cfg)
	default:
		return renderBars(c, width, cfg)
	}
}

type seriesSlot struct {
	slot int
	cat  analytics.Category
}

// visibleSeries is every series when nothing is selected, otherwise only the
// selected one.
func visibleSeries(c analytics.Chart) []seriesSlot {
	var out []seriesSlot
	for i, cat := range c.Series {
		if c.Selected == domain.All || c.Selected == cat.Key {
			out = append(out, seriesSlot{slot: i, cat: cat})
		}
	}
	return out
}

func labelWidth(series []seriesSlot) int {
	w := 0
	for _, s := range series {
		w = max(w, lipgloss.Width(s.cat.Label))
	}
	return w
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(width-lipgloss.Width(s), 0)) + s
}

// renderBars draws one group of horizontal bars per year.
func renderBars(c analytics.Chart, width int, cfg chartConfig) string {
	series := visibleSeries(c)
	labelW := labelWidth(series)

	var maxValue float64
	valueW := 1
	for _, r := range c.Rows {
		for _, s := range series {
			v := r.Value(s.slot)
			maxValue = max(maxValue, v)
			valueW = max(valueW, lipgloss.Width(cfg.format(v)))
		}
	}

	const yearW = 4
	barW := max(width-yearW-labelW-valueW-6, minBarWidth)

	var b strings.Builder
	for _, r := range c.Rows {
		year := strconv.Itoa(r.Year)
		shown := 0
		for _, s := range series {
			v := r.Value(s.slot)
			if v <= 0 {
				continue
			}
			lead := strings.Repeat(" ", yearW)
			if shown == 0 {
				lead = Bold(year)
			}
			fmt.Fprintf(&b, "%s  %s  %s %s\n",
				lead,
				padRight(s.cat.Label, labelW),
				renderBar(v, maxValue, barW, s.cat.Color),
				cfg.format(v))
			shown++
		}
		if shown == 0 {
			fmt.Fprintf(&b, "%s  %s\n", Bold(year), Dim("—"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderLine draws one sparkline per series across the row years, with a
// year axis underneath and the series total on the right.
func renderLine(c analytics.Chart, width int, cfg chartConfig) string {
	series := visibleSeries(c)
	labelW := labelWidth(series)

	var maxValue float64
	totals := make([]string, len(series))
	valueW := 1
	for i, s := range series {
		for _, r := range c.Rows {
			maxValue = max(maxValue, r.Value(s.slot))
		}
		totals[i] = cfg.format(c.SeriesTotal(s.slot))
		valueW = max(valueW, lipgloss.Width(totals[i]))
	}

	n := max(len(c.Rows), 1)
	cell := min(max((width-labelW-valueW-4)/n, 1), maxSparkCell)
	span := cell * len(c.Rows)

	var b strings.Builder
	for i, s := range series {
		values := make([]float64, len(c.Rows))
		for j, r := range c.Rows {
			values[j] = r.Value(s.slot)
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			padRight(CategoryStyle(s.cat.Color).Render(s.cat.Label), labelW),
			sparkline(values, maxValue, cell, s.cat.Color),
			padLeft(totals[i], valueW))
	}

	b.WriteString(strings.Repeat(" ", labelW+2))
	b.WriteString(Dim(yearAxis(c.Years(), span)))
	return b.String()
}

// yearAxis labels the first and last year across span columns.
func yearAxis(years []int, span int) string {
	if len(years) == 0 {
		return ""
	}
	first := strconv.Itoa(years[0])
	if len(years) == 1 {
		return first
	}
	last := strconv.Itoa(years[len(years)-1])
	gap := span - len(first) - len(last)
	if gap < 1 {
		return first + " " + last
	}
	return first + strings.Repeat(" ", gap) + last
}

// renderPie draws one share bar per slice. When a single category is
// selected the slices are years and the selected category is named first.
func renderPie(c analytics.Chart, width int, cfg chartConfig) string {
	total := c.SliceTotal()
	if len(c.Slices) == 0 || total <= 0 {
		return Dim(NoDataMessage)
	}

	labelW := 0
	for _, s := range c.Slices {
		labelW = max(labelW, lipgloss.Width(s.Label)+1)
	}
	barW := max(width-labelW-2-8-14, minBarWidth)

	var b strings.Builder
	if c.Selected != domain.All {
		if cat, ok := analytics.Lookup(c.Series, c.Selected); ok {
			b.WriteString(Dim("by year: ") + Swatch(cat.Color, cat.Label) + "\n")
		}
	}
	for _, s := range c.Slices {
		fmt.Fprintf(&b, "%s  %s  %s\n",
			padRight(CategoryStyle(s.Color).Render(s.Label+":"), labelW),
			RenderShareBar(s.Value/total, barW, s.Color),
			cfg.format(s.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderLegend lists the visible series of c as coloured swatches.
func RenderLegend(c analytics.Chart) string {
	series := visibleSeries(c)
	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = Swatch(s.cat.Color, s.cat.Label)
	}
	return strings.Join(parts, "  ")
}

// RenderChartTable prints the per-year rows of c with one column per
// visible series and a row total.
func RenderChartTable(c analytics.Chart, opts ...ChartOption) string {
	if c.NoData() {
		return Dim(NoDataMessage)
	}
	cfg := newChartConfig(opts)
	series := visibleSeries(c)

	headers := []string{"Year"}
	align := []Align{AlignLeft}
	for _, s := range series {
		headers = append(headers, s.cat.Label)
		align = append(align, AlignRight)
	}
	headers = append(headers, "Total")
	align = append(align, AlignRight)

	rows := make([][]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		row := []string{strconv.Itoa(r.Year)}
		var sum float64
		for _, s := range series {
			v := r.Value(s.slot)
			sum += v
			row = append(row, cfg.format(v))
		}
		rows = append(rows, append(row, cfg.format(sum)))
	}
	return strings.TrimRight(RenderAlignedTable(headers, rows, align), "\n")
}
