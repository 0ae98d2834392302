package testutil

import (
	"github.com/alexanderramin/deptlens/internal/domain"
)

// Record builders default to year 2020, faculty 1 and a count of 1.

type PublicationOption func(*domain.Publication)

func WithPubCount(n int) PublicationOption {
	return func(p *domain.Publication) { p.Count = n }
}

func WithIndexing(i domain.Indexing) PublicationOption {
	return func(p *domain.Publication) { p.Indexing = i }
}

func WithPubFaculty(ids ...int) PublicationOption {
	return func(p *domain.Publication) { p.FacultyIDs = ids }
}

func NewTestPublication(year int, t domain.PublicationType, opts ...PublicationOption) domain.Publication {
	p := domain.Publication{Year: year, FacultyIDs: []int{1}, Count: 1, Type: t}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

type ProjectOption func(*domain.Project)

func WithFunding(v float64) ProjectOption {
	return func(p *domain.Project) { p.Funding = v }
}

func WithProjectFaculty(ids ...int) ProjectOption {
	return func(p *domain.Project) { p.FacultyIDs = ids }
}

func NewTestProject(id, year int, s domain.ProjectStatus, opts ...ProjectOption) domain.Project {
	p := domain.Project{ID: id, Year: year, FacultyIDs: []int{1}, Status: s, Funding: 100000}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestPatent(id, year int, s domain.PatentStatus, facultyIDs ...int) domain.Patent {
	if len(facultyIDs) == 0 {
		facultyIDs = []int{1}
	}
	return domain.Patent{ID: id, Year: year, FacultyIDs: facultyIDs, Status: s}
}

type EventOption func(*domain.Event)

func WithEventCount(n int) EventOption {
	return func(e *domain.Event) { e.Count = n }
}

func WithEventFaculty(ids ...int) EventOption {
	return func(e *domain.Event) { e.FacultyIDs = ids }
}

func NewTestEvent(year int, t domain.EventType, opts ...EventOption) domain.Event {
	e := domain.Event{Year: year, FacultyIDs: []int{1}, Count: 1, Type: t}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewTestDataset returns a small dataset touching every category, with two
// faculty members and years 2019 to 2023.
func NewTestDataset() *domain.Dataset {
	return &domain.Dataset{
		Faculty: []domain.Faculty{
			{ID: 1, Name: "Dr. Asha Rao"},
			{ID: 2, Name: "Dr. Vikram Menon"},
		},
		Publications: []domain.Publication{
			NewTestPublication(2019, domain.PublicationJournal, WithPubCount(2), WithIndexing(domain.IndexingSCI)),
			NewTestPublication(2020, domain.PublicationJournal, WithPubCount(3), WithIndexing(domain.IndexingScopus), WithPubFaculty(1, 2)),
			NewTestPublication(2020, domain.PublicationConference, WithPubCount(2), WithPubFaculty(2)),
			NewTestPublication(2021, domain.PublicationBook),
			NewTestPublication(2023, domain.PublicationBookChapter, WithPubFaculty(2)),
		},
		Projects: []domain.Project{
			NewTestProject(1, 2019, domain.ProjectCompleted, WithFunding(50000)),
			NewTestProject(2, 2021, domain.ProjectOngoing, WithFunding(1250000), WithProjectFaculty(2)),
			NewTestProject(3, 2022, domain.ProjectOngoing, WithFunding(300000), WithProjectFaculty(1, 2)),
		},
		Patents: []domain.Patent{
			NewTestPatent(1, 2020, domain.PatentGranted),
			NewTestPatent(2, 2022, domain.PatentFiled, 2),
		},
		Events: []domain.Event{
			NewTestEvent(2021, domain.EventWorkshop, WithEventCount(2)),
			NewTestEvent(2022, domain.EventGIAN, WithEventFaculty(2)),
			NewTestEvent(2023, domain.EventConference, WithEventCount(3), WithEventFaculty(1, 2)),
		},
	}
}
