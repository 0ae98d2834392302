package cli

import (
	"strings"

	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardKeyMap struct {
	NextPanel   key.Binding
	PrevPanel   key.Binding
	Chart       key.Binding
	StartEarly  key.Binding
	StartLate   key.Binding
	EndEarly    key.Binding
	EndLate     key.Binding
	PubType     key.Binding
	Indexing    key.Binding
	ProjStatus  key.Binding
	PatStatus   key.Binding
	EventType   key.Binding
	Filters     key.Binding
	FacultyList key.Binding
	Dataset     key.Binding
	Reset       key.Binding
	Help        key.Binding
}

var dashboardKeys = dashboardKeyMap{
	NextPanel:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "panel")),
	PrevPanel:   key.NewBinding(key.WithKeys("shift+tab")),
	Chart:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart")),
	StartEarly:  key.NewBinding(key.WithKeys("[")),
	StartLate:   key.NewBinding(key.WithKeys("]"), key.WithHelp("[ ]", "from")),
	EndEarly:    key.NewBinding(key.WithKeys("{")),
	EndLate:     key.NewBinding(key.WithKeys("}"), key.WithHelp("{ }", "to")),
	PubType:     key.NewBinding(key.WithKeys("t")),
	Indexing:    key.NewBinding(key.WithKeys("i")),
	ProjStatus:  key.NewBinding(key.WithKeys("s")),
	PatStatus:   key.NewBinding(key.WithKeys("p")),
	EventType:   key.NewBinding(key.WithKeys("e")),
	Filters:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
	FacultyList: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "faculty")),
	Dataset:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dataset")),
	Reset:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "keys")),
}

// dashboardView is the home screen of the TUI: the filter summary above a
// 2x2 grid of chart panels.
type dashboardView struct {
	state *SharedState
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }
func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) ShortHelp() []key.Binding {
	k := dashboardKeys
	return []key.Binding{
		k.NextPanel, k.Chart, k.StartLate, k.EndLate, k.Filters, k.FacultyList, k.Reset, k.Help,
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	c := v.state.Dashboard
	s := c.State()
	k := dashboardKeys

	switch {
	case key.Matches(keyMsg, k.NextPanel):
		v.state.MoveFocus(1)
	case key.Matches(keyMsg, k.PrevPanel):
		v.state.MoveFocus(-1)
	case key.Matches(keyMsg, k.Chart):
		v.state.CycleStyle(v.state.Focus)

	case key.Matches(keyMsg, k.StartEarly):
		c.ShiftStartYear(-1)
	case key.Matches(keyMsg, k.StartLate):
		c.ShiftStartYear(1)
	case key.Matches(keyMsg, k.EndEarly):
		c.ShiftEndYear(-1)
	case key.Matches(keyMsg, k.EndLate):
		c.ShiftEndYear(1)

	case key.Matches(keyMsg, k.PubType):
		c.SetPublicationType(domain.Cycle(domain.PublicationTypes, s.PublicationType))
	case key.Matches(keyMsg, k.Indexing):
		if err := c.SetIndexing(domain.Cycle(domain.Indexings, s.Indexing)); err != nil {
			return v, notice(formatter.StyleYellow.Render("Indexing applies to journal publications. Press t until Journal is selected."))
		}
	case key.Matches(keyMsg, k.ProjStatus):
		c.SetProjectStatus(domain.Cycle(domain.ProjectStatuses, s.ProjectStatus))
	case key.Matches(keyMsg, k.PatStatus):
		c.SetPatentStatus(domain.Cycle(domain.PatentStatuses, s.PatentStatus))
	case key.Matches(keyMsg, k.EventType):
		c.SetEventType(domain.Cycle(domain.EventTypes, s.EventType))

	case key.Matches(keyMsg, k.Filters):
		return v, pushView(newFilterFormView(v.state))
	case key.Matches(keyMsg, k.FacultyList):
		return v, pushView(newFacultyListView(v.state))
	case key.Matches(keyMsg, k.Dataset):
		return v, pushView(newDatasetInfoView(v.state))
	case key.Matches(keyMsg, k.Reset):
		c.Reset()
		return v, notice(formatter.Dim("Filters reset."))
	case key.Matches(keyMsg, k.Help):
		return v, pushView(newKeyHelpView(v.state))
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const (
	defaultDashWidth = 100
	minGridWidth     = 100
	panelGap         = 1
)

func (v *dashboardView) View() string {
	snap := v.state.Dashboard.Snapshot()

	width := v.state.Width
	if width <= 0 {
		width = defaultDashWidth
	}

	var b strings.Builder
	b.WriteString(formatter.FormatFilters(snap.State, snap.FacultyName))
	b.WriteString("\n")
	b.WriteString(formatter.FormatCounts(snap.Counts))
	b.WriteString("\n")

	if width < minGridWidth {
		// Narrow terminals stack the panels.
		panels := make([]string, len(dashboard.Panels))
		for i, p := range dashboard.Panels {
			panels[i] = v.renderPanel(snap, p, width)
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, panels...))
		return b.String()
	}

	colWidth := (width - panelGap) / 2
	gap := strings.Repeat(" ", panelGap)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderPanel(snap, dashboard.PanelPublications, colWidth), gap,
		v.renderPanel(snap, dashboard.PanelProjects, colWidth))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderPanel(snap, dashboard.PanelPatents, colWidth), gap,
		v.renderPanel(snap, dashboard.PanelEvents, colWidth))
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	return b.String()
}

// renderPanel draws one bordered panel of total width w. The focused panel
// gets the accent border.
func (v *dashboardView) renderPanel(snap dashboard.Snapshot, p dashboard.Panel, w int) string {
	focused := p == v.state.Focus
	style := v.state.Style(p)

	border := formatter.ColorDim
	marker := "  "
	if focused {
		border = formatter.ColorHeader
		marker = formatter.StyleHeader.Render("▸ ")
	}

	// Border and horizontal padding take four columns.
	inner := max(w-4, 20)
	title := marker + formatter.Bold(snap.Title(p)) + "  " + formatter.Dim(string(style))
	body := formatter.PanelBody(snap, p, style, inner, false)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(inner + 2).
		Render(title + "\n" + body)
}
