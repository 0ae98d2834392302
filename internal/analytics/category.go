package analytics

import "github.com/alexanderramin/deptlens/internal/domain"

// Category describes one chart series. The declared order of a category list
// fixes row slot order and colour assignment across renders.
type Category struct {
	Key   string
	Label string
	Color string
}

var (
	PublicationTypeSeries = []Category{
		{Key: string(domain.PublicationJournal), Label: "Journal", Color: "#e76e50"},
		{Key: string(domain.PublicationConference), Label: "Conference", Color: "#2a9d90"},
		{Key: string(domain.PublicationBook), Label: "Book", Color: "#274754"},
		{Key: string(domain.PublicationBookChapter), Label: "Book Chapter", Color: "#e8c468"},
	}

	IndexingSeries = []Category{
		{Key: string(domain.IndexingSCI), Label: "SCI(E)", Color: "#4287f5"},
		{Key: string(domain.IndexingScopus), Label: "Scopus", Color: "#42f5a7"},
		{Key: string(domain.IndexingESCI), Label: "ESCI", Color: "#f542a1"},
		{Key: string(domain.IndexingOther), Label: "Other", Color: "#f5d442"},
	}

	ProjectStatusSeries = []Category{
		{Key: string(domain.ProjectOngoing), Label: "Ongoing", Color: "#2a9d90"},
		{Key: string(domain.ProjectCompleted), Label: "Completed", Color: "#274754"},
	}

	PatentStatusSeries = []Category{
		{Key: string(domain.PatentFiled), Label: "Filed", Color: "#e8c468"},
		{Key: string(domain.PatentGranted), Label: "Granted", Color: "#f4a462"},
	}

	EventTypeSeries = []Category{
		{Key: string(domain.EventConference), Label: "Conference", Color: "#845EC2"},
		{Key: string(domain.EventSTC), Label: "STC/E-STC", Color: "#D65DB1"},
		{Key: string(domain.EventWorkshop), Label: "Workshop/FDP", Color: "#FF6F91"},
		{Key: string(domain.EventGIAN), Label: "GIAN", Color: "#FF9671"},
	}
)

// indexOf returns the slot of key in series, or -1.
func indexOf(series []Category, key string) int {
	for i, c := range series {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Lookup returns the descriptor for key.
func Lookup(series []Category, key string) (Category, bool) {
	if i := indexOf(series, key); i >= 0 {
		return series[i], true
	}
	return Category{}, false
}

// LabelFor returns the display label for key, falling back to the key itself.
func LabelFor(series []Category, key string) string {
	if c, ok := Lookup(series, key); ok {
		return c.Label
	}
	return key
}
