package domain

// All is the filter sentinel meaning "no restriction" for any category enum.
// It never appears on a record.
const All = "all"

type PublicationType string

const (
	PublicationAll         PublicationType = All
	PublicationJournal     PublicationType = "journal"
	PublicationConference  PublicationType = "conference"
	PublicationBook        PublicationType = "book"
	PublicationBookChapter PublicationType = "bookChapter"
)

type Indexing string

const (
	IndexingAll    Indexing = All
	IndexingSCI    Indexing = "sci"
	IndexingScopus Indexing = "scopus"
	IndexingESCI   Indexing = "esci"
	IndexingOther  Indexing = "other"
)

type ProjectStatus string

const (
	ProjectAll       ProjectStatus = All
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
)

type PatentStatus string

const (
	PatentAll     PatentStatus = All
	PatentFiled   PatentStatus = "filed"
	PatentGranted PatentStatus = "granted"
)

type EventType string

const (
	EventAll        EventType = All
	EventConference EventType = "conference"
	EventSTC        EventType = "stc"
	EventWorkshop   EventType = "workshop"
	EventGIAN       EventType = "gian"
)

// ChartStyle selects how an aggregated chart is presented.
type ChartStyle string

const (
	ChartBar  ChartStyle = "bar"
	ChartPie  ChartStyle = "pie"
	ChartLine ChartStyle = "line"
)

// Canonical value sets, in display order. The "all" sentinel is not included.
var (
	PublicationTypes = []PublicationType{PublicationJournal, PublicationConference, PublicationBook, PublicationBookChapter}
	Indexings        = []Indexing{IndexingSCI, IndexingScopus, IndexingESCI, IndexingOther}
	ProjectStatuses  = []ProjectStatus{ProjectOngoing, ProjectCompleted}
	PatentStatuses   = []PatentStatus{PatentFiled, PatentGranted}
	EventTypes       = []EventType{EventConference, EventSTC, EventWorkshop, EventGIAN}
	ChartStyles      = []ChartStyle{ChartBar, ChartPie, ChartLine}
)

// Valid reports whether t is a concrete publication type.
func (t PublicationType) Valid() bool { return contains(PublicationTypes, t) }

// Valid reports whether i is a concrete indexing value.
func (i Indexing) Valid() bool { return contains(Indexings, i) }

// Valid reports whether s is a concrete project status.
func (s ProjectStatus) Valid() bool { return contains(ProjectStatuses, s) }

// Valid reports whether s is a concrete patent status.
func (s PatentStatus) Valid() bool { return contains(PatentStatuses, s) }

// Valid reports whether t is a concrete event type.
func (t EventType) Valid() bool { return contains(EventTypes, t) }

// Valid reports whether s is a known chart style.
func (s ChartStyle) Valid() bool { return contains(ChartStyles, s) }

// Next returns the style after s, wrapping around. Unknown styles restart at bar.
func (s ChartStyle) Next() ChartStyle {
	for i, v := range ChartStyles {
		if v == s {
			return ChartStyles[(i+1)%len(ChartStyles)]
		}
	}
	return ChartBar
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Cycle returns the element after cur in the sequence all, v1, v2, ... and
// wraps back to all. Used by keyboard toggles.
func Cycle[T ~string](values []T, cur T) T {
	if cur == T(All) {
		return values[0]
	}
	for i, v := range values {
		if v == cur {
			if i == len(values)-1 {
				return T(All)
			}
			return values[i+1]
		}
	}
	return T(All)
}
