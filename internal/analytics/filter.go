package analytics

import "github.com/alexanderramin/deptlens/internal/domain"

// AllFaculty selects records of every faculty member. Faculty ids start at 1.
const AllFaculty = 0

// FundingRange is an inclusive project funding interval.
type FundingRange struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r FundingRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterState is the full set of active dashboard constraints.
type FilterState struct {
	StartYear int
	EndYear   int
	FacultyID int

	PublicationType domain.PublicationType
	Indexing        domain.Indexing
	ProjectStatus   domain.ProjectStatus
	PatentStatus    domain.PatentStatus
	EventType       domain.EventType

	Funding FundingRange
}

// NewFilterState returns an unrestricted state over the given bounds.
func NewFilterState(b domain.Bounds) FilterState {
	return FilterState{
		StartYear:       b.MinYear,
		EndYear:         b.MaxYear,
		FacultyID:       AllFaculty,
		PublicationType: domain.PublicationAll,
		Indexing:        domain.IndexingAll,
		ProjectStatus:   domain.ProjectAll,
		PatentStatus:    domain.PatentAll,
		EventType:       domain.EventAll,
		Funding:         FundingRange{Min: b.MinFunding, Max: b.MaxFunding},
	}
}

// common checks the year window and faculty membership shared by every domain.
func (s FilterState) common(year int, facultyIDs []int) bool {
	if year < s.StartYear || year > s.EndYear {
		return false
	}
	return s.FacultyID == AllFaculty || domain.HasFaculty(facultyIDs, s.FacultyID)
}

// IndexingActive reports whether the indexing sub-filter applies. Indexing
// only refines journal publications.
func (s FilterState) IndexingActive() bool {
	return s.PublicationType == domain.PublicationJournal && s.Indexing != domain.IndexingAll
}

// MatchPublication reports whether p satisfies every active predicate.
func (s FilterState) MatchPublication(p domain.Publication) bool {
	if !s.common(p.Year, p.FacultyIDs) {
		return false
	}
	if s.PublicationType != domain.PublicationAll && p.Type != s.PublicationType {
		return false
	}
	if s.IndexingActive() && p.Indexing != s.Indexing {
		return false
	}
	return true
}

// MatchProject reports whether p satisfies every active predicate.
func (s FilterState) MatchProject(p domain.Project) bool {
	if !s.common(p.Year, p.FacultyIDs) {
		return false
	}
	if s.ProjectStatus != domain.ProjectAll && p.Status != s.ProjectStatus {
		return false
	}
	return s.Funding.Contains(p.Funding)
}

// MatchPatent reports whether p satisfies every active predicate.
func (s FilterState) MatchPatent(p domain.Patent) bool {
	if !s.common(p.Year, p.FacultyIDs) {
		return false
	}
	return s.PatentStatus == domain.PatentAll || p.Status == s.PatentStatus
}

// MatchEvent reports whether e satisfies every active predicate.
func (s FilterState) MatchEvent(e domain.Event) bool {
	if !s.common(e.Year, e.FacultyIDs) {
		return false
	}
	return s.EventType == domain.EventAll || e.Type == s.EventType
}

// keep returns the records accepted by match, preserving input order.
// The result is never nil.
func keep[T any](records []T, match func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterPublications returns the publications matching s.
func FilterPublications(records []domain.Publication, s FilterState) []domain.Publication {
	return keep(records, s.MatchPublication)
}

// FilterProjects returns the projects matching s.
func FilterProjects(records []domain.Project, s FilterState) []domain.Project {
	return keep(records, s.MatchProject)
}

// FilterPatents returns the patents matching s.
func FilterPatents(records []domain.Patent, s FilterState) []domain.Patent {
	return keep(records, s.MatchPatent)
}

// FilterEvents returns the events matching s.
func FilterEvents(records []domain.Event, s FilterState) []domain.Event {
	return keep(records, s.MatchEvent)
}
