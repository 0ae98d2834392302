package analytics

import "github.com/alexanderramin/deptlens/internal/domain"

// FacultyTotals is one faculty member's unfiltered contribution to each domain.
type FacultyTotals struct {
	Faculty      domain.Faculty
	Publications int
	Projects     int
	Funding      float64
	Patents      int
	Events       int
}

// TotalsByFaculty attributes every record to each of its faculty members, in
// dataset faculty order. A record shared by two members counts for both.
func TotalsByFaculty(ds *domain.Dataset) []FacultyTotals {
	out := make([]FacultyTotals, len(ds.Faculty))
	slot := make(map[int]int, len(ds.Faculty))
	for i, f := range ds.Faculty {
		out[i].Faculty = f
		slot[f.ID] = i
	}
	each := func(ids []int, fn func(t *FacultyTotals)) {
		for _, id := range ids {
			if i, ok := slot[id]; ok {
				fn(&out[i])
			}
		}
	}

	for _, p := range ds.Publications {
		each(p.FacultyIDs, func(t *FacultyTotals) { t.Publications += p.Count })
	}
	for _, p := range ds.Projects {
		each(p.FacultyIDs, func(t *FacultyTotals) {
			t.Projects++
			t.Funding += p.Funding
		})
	}
	for _, p := range ds.Patents {
		each(p.FacultyIDs, func(t *FacultyTotals) { t.Patents++ })
	}
	for _, e := range ds.Events {
		each(e.FacultyIDs, func(t *FacultyTotals) { t.Events += e.Count })
	}
	return out
}
