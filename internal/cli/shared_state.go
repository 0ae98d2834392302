package cli

import (
	"github.com/alexanderramin/deptlens/internal/dashboard"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App       *App
	Dashboard *dashboard.Controller
	Source    *service.DatasetSource

	// Per-panel chart style; starts from the panel defaults.
	Styles map[dashboard.Panel]domain.ChartStyle
	Focus  dashboard.Panel

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App, c *dashboard.Controller, src *service.DatasetSource) *SharedState {
	var style domain.ChartStyle
	if app != nil {
		style = app.Config.Chart
	}
	return &SharedState{
		App:       app,
		Dashboard: c,
		Source:    src,
		Styles:    chartStyles(style),
		Focus:     dashboard.PanelPublications,
	}
}

// Style returns the chart style of p.
func (s *SharedState) Style(p dashboard.Panel) domain.ChartStyle {
	if st, ok := s.Styles[p]; ok {
		return st
	}
	return p.DefaultChartStyle()
}

// CycleStyle advances the chart style of p and returns the new style.
func (s *SharedState) CycleStyle(p dashboard.Panel) domain.ChartStyle {
	next := s.Style(p).Next()
	s.Styles[p] = next
	return next
}

// MoveFocus shifts the focused panel by delta, wrapping around.
func (s *SharedState) MoveFocus(delta int) {
	n := len(dashboard.Panels)
	for i, p := range dashboard.Panels {
		if p == s.Focus {
			s.Focus = dashboard.Panels[((i+delta)%n+n)%n]
			return
		}
	}
	s.Focus = dashboard.Panels[0]
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and notice line (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
