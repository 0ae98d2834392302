package dashboard

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/domain"
)

// Panel identifies one of the four dashboard quadrants.
type Panel string

const (
	PanelPublications Panel = "publications"
	PanelProjects     Panel = "projects"
	PanelPatents      Panel = "patents"
	PanelEvents       Panel = "events"
)

// Panels lists the quadrants in layout order: top-left, top-right,
// bottom-left, bottom-right.
var Panels = []Panel{PanelPublications, PanelProjects, PanelPatents, PanelEvents}

// ParsePanels reads a comma-separated panel list. An empty string selects
// every panel.
func ParsePanels(s string) ([]Panel, error) {
	if strings.TrimSpace(s) == "" {
		return Panels, nil
	}
	var out []Panel
	for _, part := range strings.Split(s, ",") {
		p := Panel(strings.ToLower(strings.TrimSpace(part)))
		if !p.Valid() {
			return nil, fmt.Errorf("unknown panel %q (expected one of: publications, projects, patents, events)", part)
		}
		if !containsPanel(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (p Panel) Valid() bool { return containsPanel(Panels, p) }

// DefaultChartStyle is events as a line chart and everything else as bars.
func (p Panel) DefaultChartStyle() domain.ChartStyle {
	if p == PanelEvents {
		return domain.ChartLine
	}
	return domain.ChartBar
}

func containsPanel(list []Panel, p Panel) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}

// Title returns the panel heading for p.
func (s Snapshot) Title(p Panel) string {
	switch p {
	case PanelPublications:
		return s.PublicationsTitle()
	case PanelProjects:
		return s.ProjectsTitle()
	case PanelPatents:
		return s.PatentsTitle()
	default:
		return s.EventsTitle()
	}
}

// Chart returns the primary chart of p.
func (s Snapshot) Chart(p Panel) analytics.Chart {
	switch p {
	case PanelPublications:
		return s.Publications
	case PanelProjects:
		return s.Projects
	case PanelPatents:
		return s.Patents
	default:
		return s.Events
	}
}

// Count returns the number of filtered records behind p.
func (s Snapshot) Count(p Panel) int {
	switch p {
	case PanelPublications:
		return s.Counts.Publications
	case PanelProjects:
		return s.Counts.Projects
	case PanelPatents:
		return s.Counts.Patents
	default:
		return s.Counts.Events
	}
}
