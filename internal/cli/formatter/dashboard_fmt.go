package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
)

// SummaryOptions controls FormatSummary.
type SummaryOptions struct {
	Panels []dashboard.Panel // nil means every panel
	Styles map[dashboard.Panel]domain.ChartStyle
	Table  bool
	Width  int
}

func (o SummaryOptions) style(p dashboard.Panel) domain.ChartStyle {
	if s, ok := o.Styles[p]; ok && s.Valid() {
		return s
	}
	return p.DefaultChartStyle()
}

// FormatSummary renders the non-interactive dashboard report.
func FormatSummary(snap dashboard.Snapshot, opts SummaryOptions) string {
	panels := opts.Panels
	if len(panels) == 0 {
		panels = dashboard.Panels
	}

	var b strings.Builder
	b.WriteString(Header("Department Research Dashboard"))
	b.WriteString("\n")
	b.WriteString(FormatFilters(snap.State, snap.FacultyName))
	b.WriteString("\n")
	b.WriteString(FormatCounts(snap.Counts))
	b.WriteString("\n")

	for _, p := range panels {
		b.WriteString("\n")
		b.WriteString(FormatPanel(snap, p, opts.style(p), opts.Width, opts.Table))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatPanel renders one dashboard panel: heading, chart, and optionally
// the row table. The projects panel carries its funding chart as well.
func FormatPanel(snap dashboard.Snapshot, p dashboard.Panel, style domain.ChartStyle, width int, table bool) string {
	var b strings.Builder
	b.WriteString(Header(snap.Title(p)))
	b.WriteString("\n")
	b.WriteString(PanelBody(snap, p, style, width, table))
	return b.String()
}

// PanelBody is FormatPanel without the heading, for callers that frame the
// panel themselves.
func PanelBody(snap dashboard.Snapshot, p dashboard.Panel, style domain.ChartStyle, width int, table bool) string {
	chart := snap.Chart(p)

	var b strings.Builder
	b.WriteString(Dim(chart.Title))
	b.WriteString("\n")
	b.WriteString(RenderChart(chart, style, width))
	// Bar labels are plain text, so the colours need a key.
	if style == domain.ChartBar && !chart.NoData() && len(visibleSeries(chart)) > 1 {
		b.WriteString("\n")
		b.WriteString(RenderLegend(chart))
	}
	if table && !chart.NoData() {
		b.WriteString("\n\n")
		b.WriteString(RenderChartTable(chart))
	}

	if p == dashboard.PanelProjects && !snap.ProjectFunding.NoData() {
		money := WithValueFormat(FormatCurrency)
		b.WriteString("\n\n")
		b.WriteString(Dim("Sanctioned funding"))
		b.WriteString("\n")
		b.WriteString(RenderChart(snap.ProjectFunding, style, width, money))
		if table {
			b.WriteString("\n\n")
			b.WriteString(RenderChartTable(snap.ProjectFunding, money))
		}
	}
	return b.String()
}

// FormatFilters describes the active filter state on two lines.
func FormatFilters(s analytics.FilterState, facultyName string) string {
	faculty := "All faculty"
	if facultyName != "" {
		faculty = facultyName
	}

	pub := FilterLabel(analytics.PublicationTypeSeries, string(s.PublicationType))
	if s.IndexingActive() {
		pub += " / " + FilterLabel(analytics.IndexingSeries, string(s.Indexing))
	}

	first := fmt.Sprintf("%s %s  %s %s  %s %s",
		Dim("Years"), Bold(FormatYearRange(s.StartYear, s.EndYear)),
		Dim("Faculty"), Bold(faculty),
		Dim("Funding"), Bold(FormatCurrency(s.Funding.Min)+" – "+FormatCurrency(s.Funding.Max)))
	second := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		Dim("Publications"), pub,
		Dim("Projects"), FilterLabel(analytics.ProjectStatusSeries, string(s.ProjectStatus)),
		Dim("Patents"), FilterLabel(analytics.PatentStatusSeries, string(s.PatentStatus)),
		Dim("Events"), FilterLabel(analytics.EventTypeSeries, string(s.EventType)))
	return first + "\n" + second
}

// FilterLabel names a filter value, "All" for the sentinel.
func FilterLabel(series []analytics.Category, key string) string {
	if key == domain.All || key == "" {
		return "All"
	}
	return analytics.LabelFor(series, key)
}

// FormatCounts summarises the filtered record counts.
func FormatCounts(c dashboard.Counts) string {
	return Dim("Matching ") + strings.Join([]string{
		Plural(c.Publications, "publication record"),
		Plural(c.Projects, "project"),
		Plural(c.Patents, "patent"),
		Plural(c.Events, "event record"),
	}, Dim(" · "))
}

// FormatFacultyList renders per-faculty totals as a table.
func FormatFacultyList(totals []analytics.FacultyTotals) string {
	if len(totals) == 0 {
		return Dim("No faculty in dataset.")
	}

	headers := []string{"ID", "NAME", "PUBLICATIONS", "PROJECTS", "FUNDING", "PATENTS", "EVENTS"}
	align := []Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			Dim(strconv.Itoa(t.Faculty.ID)),
			Bold(t.Faculty.Name),
			strconv.Itoa(t.Publications),
			strconv.Itoa(t.Projects),
			FormatCurrency(t.Funding),
			strconv.Itoa(t.Patents),
			strconv.Itoa(t.Events),
		})
	}
	return Header("Faculty") + "\n" + RenderAlignedTable(headers, rows, align)
}
