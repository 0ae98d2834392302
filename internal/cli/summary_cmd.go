package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/spf13/cobra"
)

const defaultReportWidth = 72

type summaryFlags struct {
	from, to   int
	faculty    string
	pubType    domain.PublicationType
	indexing   domain.Indexing
	projStatus domain.ProjectStatus
	patStatus  domain.PatentStatus
	eventType  domain.EventType
	fundingMin string
	fundingMax string
	chart      domain.ChartStyle
	only       string
	table      bool
	width      int
}

func defaultSummaryFlags() summaryFlags {
	return summaryFlags{
		pubType:    domain.PublicationAll,
		indexing:   domain.IndexingAll,
		projStatus: domain.ProjectAll,
		patStatus:  domain.PatentAll,
		eventType:  domain.EventAll,
		width:      defaultReportWidth,
	}
}

func newSummaryCmd(app *App) *cobra.Command {
	f := defaultSummaryFlags()

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard as a text report",
		Example: "  deptlens summary --from 2020 --to 2023 --pub-type journal --indexing scopus\n" +
			"  deptlens summary --faculty \"Sharma\" --only publications,patents --chart pie",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, app, f)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.from, "from", 0, "First year of the window (default: trailing window)")
	fl.IntVar(&f.to, "to", 0, "Last year of the window (default: latest year)")
	fl.StringVar(&f.faculty, "faculty", "", "Faculty id or name (default: all)")
	fl.Var(newEnumFlag(&f.pubType, domain.PublicationTypes, true), "pub-type", "Publication type: all, journal, conference, book, bookChapter")
	fl.Var(newEnumFlag(&f.indexing, domain.Indexings, true), "indexing", "Journal indexing: all, sci, scopus, esci, other (requires --pub-type journal)")
	fl.Var(newEnumFlag(&f.projStatus, domain.ProjectStatuses, true), "project-status", "Project status: all, ongoing, completed")
	fl.Var(newEnumFlag(&f.patStatus, domain.PatentStatuses, true), "patent-status", "Patent status: all, filed, granted")
	fl.Var(newEnumFlag(&f.eventType, domain.EventTypes, true), "event-type", "Event type: all, conference, stc, workshop, gian")
	fl.StringVar(&f.fundingMin, "funding-min", "", "Minimum project funding, e.g. 50000 or 1.5L")
	fl.StringVar(&f.fundingMax, "funding-max", "", "Maximum project funding, e.g. 25L")
	fl.Var(newEnumFlag(&f.chart, domain.ChartStyles, false), "chart", "Chart style for every panel: bar, pie, line")
	fl.StringVar(&f.only, "only", "", "Comma-separated panels: publications, projects, patents, events")
	fl.BoolVar(&f.table, "table", false, "Add the per-year row table under each chart")
	fl.IntVar(&f.width, "width", defaultReportWidth, "Report width in columns")

	return cmd
}

func runSummary(cmd *cobra.Command, app *App, f summaryFlags) error {
	panels, err := dashboard.ParsePanels(f.only)
	if err != nil {
		return err
	}

	c, _, err := app.newController(cmd.Context())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	s := c.State()

	if flags.Changed("from") {
		s.StartYear = f.from
	}
	if flags.Changed("to") {
		s.EndYear = f.to
	}
	if flags.Changed("from") && flags.Changed("to") && f.from > f.to {
		return fmt.Errorf("--from %d is after --to %d", f.from, f.to)
	}
	if flags.Changed("to") && !flags.Changed("from") && s.StartYear > s.EndYear {
		s.StartYear = s.EndYear
	}

	if f.faculty != "" {
		id, err := resolveFaculty(c.Dataset(), f.faculty)
		if err != nil {
			return err
		}
		s.FacultyID = id
	}

	s.PublicationType = f.pubType
	if f.indexing != domain.IndexingAll && f.pubType != domain.PublicationJournal {
		return fmt.Errorf("--indexing: %w", dashboard.ErrIndexingUnavailable)
	}
	s.Indexing = f.indexing
	s.ProjectStatus = f.projStatus
	s.PatentStatus = f.patStatus
	s.EventType = f.eventType

	if f.fundingMin != "" {
		if s.Funding.Min, err = parseRupees(f.fundingMin); err != nil {
			return fmt.Errorf("--funding-min: %w", err)
		}
	}
	if f.fundingMax != "" {
		if s.Funding.Max, err = parseRupees(f.fundingMax); err != nil {
			return fmt.Errorf("--funding-max: %w", err)
		}
	}

	if err := c.Apply(s); err != nil {
		if errors.Is(err, dashboard.ErrUnknownFaculty) {
			return fmt.Errorf("--faculty: %w", err)
		}
		return err
	}

	opts := formatter.SummaryOptions{
		Panels: panels,
		Styles: chartStyles(firstStyle(f.chart, app.Config.Chart)),
		Table:  f.table,
		Width:  f.width,
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(c.Snapshot(), opts))
	return nil
}

func firstStyle(styles ...domain.ChartStyle) domain.ChartStyle {
	for _, s := range styles {
		if s != "" {
			return s
		}
	}
	return ""
}

// chartStyles maps every panel to style, or to its own default when style
// is empty.
func chartStyles(style domain.ChartStyle) map[dashboard.Panel]domain.ChartStyle {
	out := make(map[dashboard.Panel]domain.ChartStyle, len(dashboard.Panels))
	for _, p := range dashboard.Panels {
		if style != "" {
			out[p] = style
		} else {
			out[p] = p.DefaultChartStyle()
		}
	}
	return out
}
