package analytics

import "github.com/alexanderramin/deptlens/internal/domain"

// PublicationsChart breaks publications down by type when no type is
// selected, and journals down by indexing when journal is selected. Any other
// single type is shown as its own per-year series.
func PublicationsChart(records []domain.Publication, s FilterState) Chart {
	title := publicationTitle(s.PublicationType)

	if s.PublicationType == domain.PublicationJournal {
		tallies := make([]Tally, len(records))
		for i, p := range records {
			tallies[i] = Tally{Year: p.Year, Category: string(p.Indexing), Amount: float64(p.Count)}
		}
		return Aggregate(title, tallies, IndexingSeries, string(s.Indexing))
	}

	tallies := make([]Tally, len(records))
	for i, p := range records {
		tallies[i] = Tally{Year: p.Year, Category: string(p.Type), Amount: float64(p.Count)}
	}
	return Aggregate(title, tallies, PublicationTypeSeries, string(s.PublicationType))
}

// ProjectsChart counts one unit per project.
func ProjectsChart(records []domain.Project, s FilterState) Chart {
	tallies := make([]Tally, len(records))
	for i, p := range records {
		tallies[i] = Tally{Year: p.Year, Category: string(p.Status), Amount: 1}
	}
	return Aggregate(projectTitle(s.ProjectStatus), tallies, ProjectStatusSeries, string(s.ProjectStatus))
}

// ProjectFundingChart sums sanctioned funding per status per year.
func ProjectFundingChart(records []domain.Project, s FilterState) Chart {
	tallies := make([]Tally, len(records))
	for i, p := range records {
		tallies[i] = Tally{Year: p.Year, Category: string(p.Status), Amount: p.Funding}
	}
	return Aggregate("Project Funding", tallies, ProjectStatusSeries, string(s.ProjectStatus))
}

// PatentsChart counts one unit per patent.
func PatentsChart(records []domain.Patent, s FilterState) Chart {
	tallies := make([]Tally, len(records))
	for i, p := range records {
		tallies[i] = Tally{Year: p.Year, Category: string(p.Status), Amount: 1}
	}
	return Aggregate(patentTitle(s.PatentStatus), tallies, PatentStatusSeries, string(s.PatentStatus))
}

// EventsChart sums event counts by type.
func EventsChart(records []domain.Event, s FilterState) Chart {
	tallies := make([]Tally, len(records))
	for i, e := range records {
		tallies[i] = Tally{Year: e.Year, Category: string(e.Type), Amount: float64(e.Count)}
	}
	return Aggregate(eventTitle(s.EventType), tallies, EventTypeSeries, string(s.EventType))
}

func publicationTitle(t domain.PublicationType) string {
	switch t {
	case domain.PublicationJournal:
		return "Journal Publications"
	case domain.PublicationConference:
		return "Conference Publications"
	case domain.PublicationBook:
		return "Book Publications"
	case domain.PublicationBookChapter:
		return "Book Chapter Publications"
	default:
		return "All Publications"
	}
}

func projectTitle(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectOngoing:
		return "Ongoing Consultancies/Research Projects"
	case domain.ProjectCompleted:
		return "Completed Consultancies/Research Projects"
	default:
		return "All Consultancies/Research Projects"
	}
}

func patentTitle(s domain.PatentStatus) string {
	switch s {
	case domain.PatentFiled:
		return "Filed Patents"
	case domain.PatentGranted:
		return "Granted Patents"
	default:
		return "All Patents"
	}
}

func eventTitle(t domain.EventType) string {
	switch t {
	case domain.EventConference:
		return "Conference Events"
	case domain.EventSTC:
		return "STC/E-STC Events"
	case domain.EventWorkshop:
		return "Workshop/FDP Events"
	case domain.EventGIAN:
		return "GIAN Events"
	default:
		return "All Events"
	}
}
