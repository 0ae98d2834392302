package domain

import (
	"math"
	"sort"
)

// Dataset is the full record store. It is built once at startup and never
// mutated afterwards.
type Dataset struct {
	Faculty      []Faculty
	Publications []Publication
	Projects     []Project
	Patents      []Patent
	Events       []Event
}

// Bounds are the year and funding extents of a dataset.
type Bounds struct {
	Years      []int
	MinYear    int
	MaxYear    int
	MinFunding float64
	MaxFunding float64
}

// DeriveBounds computes the distinct years across all four record domains
// and the project funding extent. An empty dataset yields zero bounds.
func DeriveBounds(ds *Dataset) Bounds {
	seen := make(map[int]bool)
	add := func(y int) { seen[y] = true }
	for _, p := range ds.Publications {
		add(p.Year)
	}
	for _, p := range ds.Projects {
		add(p.Year)
	}
	for _, p := range ds.Patents {
		add(p.Year)
	}
	for _, e := range ds.Events {
		add(e.Year)
	}

	var b Bounds
	for y := range seen {
		b.Years = append(b.Years, y)
	}
	sort.Ints(b.Years)
	if len(b.Years) > 0 {
		b.MinYear = b.Years[0]
		b.MaxYear = b.Years[len(b.Years)-1]
	}

	if len(ds.Projects) > 0 {
		b.MinFunding = math.Inf(1)
		b.MaxFunding = math.Inf(-1)
		for _, p := range ds.Projects {
			b.MinFunding = math.Min(b.MinFunding, p.Funding)
			b.MaxFunding = math.Max(b.MaxFunding, p.Funding)
		}
	}
	return b
}

// ClampYear limits y to [MinYear, MaxYear].
func (b Bounds) ClampYear(y int) int {
	if y < b.MinYear {
		return b.MinYear
	}
	if y > b.MaxYear {
		return b.MaxYear
	}
	return y
}

// ClampFunding limits v to [MinFunding, MaxFunding]. NaN maps to MinFunding.
func (b Bounds) ClampFunding(v float64) float64 {
	if math.IsNaN(v) {
		return b.MinFunding
	}
	return math.Max(b.MinFunding, math.Min(b.MaxFunding, v))
}

// FacultyByID returns the faculty member with the given id.
func (ds *Dataset) FacultyByID(id int) (Faculty, bool) {
	for _, f := range ds.Faculty {
		if f.ID == id {
			return f, true
		}
	}
	return Faculty{}, false
}

// RecordCount returns the total number of records across all domains.
func (ds *Dataset) RecordCount() int {
	return len(ds.Publications) + len(ds.Projects) + len(ds.Patents) + len(ds.Events)
}
