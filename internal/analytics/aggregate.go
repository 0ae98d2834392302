package analytics

import (
	"sort"
	"strconv"

	"github.com/alexanderramin/deptlens/internal/domain"
)

// ChartState distinguishes a renderable chart from the explicit no-data state.
type ChartState int

const (
	ChartReady ChartState = iota
	ChartNoData
)

// Tally is one record's contribution to a chart: Amount is added to the
// Category slot of the Year row.
type Tally struct {
	Year     int
	Category string
	Amount   float64
}

// Row is one per-year summary. Values is index-aligned with the chart's
// Series and always holds one entry per declared category.
type Row struct {
	Year   int
	Values []float64
	Total  float64
}

// Value returns the row value for a series slot, or 0 for an out-of-range slot.
func (r Row) Value(slot int) float64 {
	if slot < 0 || slot >= len(r.Values) {
		return 0
	}
	return r.Values[slot]
}

// Slice is one pie segment.
type Slice struct {
	Key   string
	Label string
	Value float64
	Color string
}

// Chart is the chart-ready output of Aggregate.
type Chart struct {
	Title    string
	Series   []Category
	Selected string // category key, or domain.All
	Rows     []Row
	Slices   []Slice
	State    ChartState
}

// NoData reports whether the chart was built from an empty record set.
func (c Chart) NoData() bool { return c.State == ChartNoData }

// SeriesTotal sums one series slot across all rows.
func (c Chart) SeriesTotal(slot int) float64 {
	var total float64
	for _, r := range c.Rows {
		total += r.Value(slot)
	}
	return total
}

// SliceTotal sums every slice value.
func (c Chart) SliceTotal() float64 {
	var total float64
	for _, s := range c.Slices {
		total += s.Value
	}
	return total
}

// Years returns the row years in order.
func (c Chart) Years() []int {
	years := make([]int, len(c.Rows))
	for i, r := range c.Rows {
		years[i] = r.Year
	}
	return years
}

// Aggregate groups tallies into dense per-year rows and pie slices.
//
// Rows: one per distinct tally year, ascending. A tally whose category is not
// in series still marks its year as present but adds to no slot.
//
// Slices: with selected == all, one per category summed over every row;
// otherwise one per year where the selected category is non-zero. Zero slices
// are dropped.
func Aggregate(title string, tallies []Tally, series []Category, selected string) Chart {
	chart := Chart{
		Title:    title,
		Series:   series,
		Selected: selected,
		Rows:     []Row{},
		Slices:   []Slice{},
	}
	if len(tallies) == 0 {
		chart.State = ChartNoData
		return chart
	}

	byYear := make(map[int]*Row)
	for _, t := range tallies {
		row, ok := byYear[t.Year]
		if !ok {
			row = &Row{Year: t.Year, Values: make([]float64, len(series))}
			byYear[t.Year] = row
		}
		if slot := indexOf(series, t.Category); slot >= 0 {
			row.Values[slot] += t.Amount
			row.Total += t.Amount
		}
	}

	for _, row := range byYear {
		chart.Rows = append(chart.Rows, *row)
	}
	sort.Slice(chart.Rows, func(i, j int) bool { return chart.Rows[i].Year < chart.Rows[j].Year })

	chart.Slices = pieSlices(chart.Rows, series, selected)
	return chart
}

func pieSlices(rows []Row, series []Category, selected string) []Slice {
	slices := []Slice{}
	if selected == domain.All {
		for slot, c := range series {
			var sum float64
			for _, r := range rows {
				sum += r.Values[slot]
			}
			if sum > 0 {
				slices = append(slices, Slice{Key: c.Key, Label: c.Label, Value: sum, Color: c.Color})
			}
		}
		return slices
	}

	slot := indexOf(series, selected)
	if slot < 0 {
		return slices
	}
	color := series[slot].Color
	for _, r := range rows {
		if v := r.Values[slot]; v > 0 {
			year := strconv.Itoa(r.Year)
			slices = append(slices, Slice{Key: year, Label: year, Value: v, Color: color})
		}
	}
	return slices
}
