package dashboard

import (
	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/domain"
)

// Counts holds the size of each filtered subset.
type Counts struct {
	Publications int
	Projects     int
	Patents      int
	Events       int
}

// Snapshot is everything a presenter needs for one filter state.
type Snapshot struct {
	State       analytics.FilterState
	FacultyName string // empty when all faculty are selected

	Publications   analytics.Chart
	Projects       analytics.Chart
	ProjectFunding analytics.Chart
	Patents        analytics.Chart
	Events         analytics.Chart

	Counts Counts
}

// Panel titles, scoped to the selected faculty member when there is one.
func (s Snapshot) PublicationsTitle() string {
	return s.scoped("Publications", "Research Publications")
}

func (s Snapshot) ProjectsTitle() string {
	return s.scoped("Consultancies/Research Projects", "Consultancies/Research Projects")
}

func (s Snapshot) PatentsTitle() string {
	return s.scoped("Patents", "Patents Filed/Granted")
}

func (s Snapshot) EventsTitle() string {
	return s.scoped("Events", "Faculty Events")
}

func (s Snapshot) scoped(scopedTitle, allTitle string) string {
	if s.FacultyName == "" {
		return allTitle
	}
	return s.FacultyName + "'s " + scopedTitle
}

func buildSnapshot(ds *domain.Dataset, state analytics.FilterState) Snapshot {
	pubs := analytics.FilterPublications(ds.Publications, state)
	projects := analytics.FilterProjects(ds.Projects, state)
	patents := analytics.FilterPatents(ds.Patents, state)
	events := analytics.FilterEvents(ds.Events, state)

	snap := Snapshot{
		State:          state,
		Publications:   analytics.PublicationsChart(pubs, state),
		Projects:       analytics.ProjectsChart(projects, state),
		ProjectFunding: analytics.ProjectFundingChart(projects, state),
		Patents:        analytics.PatentsChart(patents, state),
		Events:         analytics.EventsChart(events, state),
		Counts: Counts{
			Publications: len(pubs),
			Projects:     len(projects),
			Patents:      len(patents),
			Events:       len(events),
		},
	}
	if state.FacultyID != analytics.AllFaculty {
		if f, ok := ds.FacultyByID(state.FacultyID); ok {
			snap.FacultyName = f.Name
		}
	}
	return snap
}
