// Package dashboard owns the interactive filter state and keeps a chart
// snapshot in step with it.
//
// A Controller is not safe for concurrent use; it belongs to a single
// update loop (the TUI model or one CLI invocation).
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/domain"
)

var (
	ErrUnknownFaculty      = errors.New("unknown faculty")
	ErrIndexingUnavailable = errors.New("indexing filter requires journal publication type")
)

// DefaultWindowYears is the width of the initial year window.
const DefaultWindowYears = 5

// RecomputeFunc is notified after every snapshot rebuild.
type RecomputeFunc func(state analytics.FilterState, took time.Duration)

type Controller struct {
	dataset *domain.Dataset
	bounds  domain.Bounds
	window  int

	state    analytics.FilterState
	snapshot Snapshot

	onRecompute RecomputeFunc
}

type Option func(*Controller)

// WithWindowYears sets how many trailing years the default state covers.
// Values below 1 are ignored.
func WithWindowYears(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.window = n
		}
	}
}

// WithRecomputeHook registers fn to observe snapshot rebuilds.
func WithRecomputeHook(fn RecomputeFunc) Option {
	return func(c *Controller) { c.onRecompute = fn }
}

// New creates a controller over ds. Bounds must have been derived from ds.
func New(ds *domain.Dataset, bounds domain.Bounds, opts ...Option) *Controller {
	c := &Controller{
		dataset: ds,
		bounds:  bounds,
		window:  DefaultWindowYears,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = c.defaultState()
	c.recompute()
	return c
}

// defaultState covers the trailing window of years, everything else open.
func (c *Controller) defaultState() analytics.FilterState {
	s := analytics.NewFilterState(c.bounds)
	s.StartYear = max(c.bounds.MinYear, c.bounds.MaxYear-c.window+1)
	return s
}

func (c *Controller) State() analytics.FilterState { return c.state }
func (c *Controller) Bounds() domain.Bounds        { return c.bounds }
func (c *Controller) Dataset() *domain.Dataset     { return c.dataset }
func (c *Controller) Snapshot() Snapshot           { return c.snapshot }

// Reset restores the default state.
func (c *Controller) Reset() {
	c.state = c.defaultState()
	c.recompute()
}

// SetStartYear moves the window start, pulling the end year up if needed.
func (c *Controller) SetStartYear(y int) {
	y = c.bounds.ClampYear(y)
	c.state.StartYear = y
	if y > c.state.EndYear {
		c.state.EndYear = y
	}
	c.recompute()
}

// SetEndYear moves the window end, pulling the start year down if needed.
func (c *Controller) SetEndYear(y int) {
	y = c.bounds.ClampYear(y)
	c.state.EndYear = y
	if y < c.state.StartYear {
		c.state.StartYear = y
	}
	c.recompute()
}

func (c *Controller) ShiftStartYear(delta int) { c.SetStartYear(c.state.StartYear + delta) }
func (c *Controller) ShiftEndYear(delta int)   { c.SetEndYear(c.state.EndYear + delta) }

// SetFaculty selects one faculty member, or analytics.AllFaculty.
func (c *Controller) SetFaculty(id int) error {
	if id != analytics.AllFaculty {
		if _, ok := c.dataset.FacultyByID(id); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownFaculty, id)
		}
	}
	c.state.FacultyID = id
	c.recompute()
	return nil
}

// SetPublicationType changes the type filter and resets indexing to all.
func (c *Controller) SetPublicationType(t domain.PublicationType) {
	c.state.PublicationType = t
	c.state.Indexing = domain.IndexingAll
	c.recompute()
}

// SetIndexing refines journal publications by indexing.
func (c *Controller) SetIndexing(i domain.Indexing) error {
	if i != domain.IndexingAll && c.state.PublicationType != domain.PublicationJournal {
		return ErrIndexingUnavailable
	}
	c.state.Indexing = i
	c.recompute()
	return nil
}

func (c *Controller) SetProjectStatus(s domain.ProjectStatus) {
	c.state.ProjectStatus = s
	c.recompute()
}

func (c *Controller) SetPatentStatus(s domain.PatentStatus) {
	c.state.PatentStatus = s
	c.recompute()
}

func (c *Controller) SetEventType(t domain.EventType) {
	c.state.EventType = t
	c.recompute()
}

// SetFundingRange clamps both ends to the dataset extent and swaps a
// reversed pair.
func (c *Controller) SetFundingRange(lo, hi float64) {
	lo = c.bounds.ClampFunding(lo)
	hi = c.bounds.ClampFunding(hi)
	if lo > hi {
		lo, hi = hi, lo
	}
	c.state.Funding = analytics.FundingRange{Min: lo, Max: hi}
	c.recompute()
}

// Apply replaces the whole state at once. Years and funding are clamped,
// the year window and funding range are normalised, and indexing is
// dropped when the type is not journal. An unknown faculty is rejected.
func (c *Controller) Apply(s analytics.FilterState) error {
	if s.FacultyID != analytics.AllFaculty {
		if _, ok := c.dataset.FacultyByID(s.FacultyID); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownFaculty, s.FacultyID)
		}
	}
	s.StartYear = c.bounds.ClampYear(s.StartYear)
	s.EndYear = c.bounds.ClampYear(s.EndYear)
	if s.StartYear > s.EndYear {
		s.EndYear = s.StartYear
	}
	s.Funding.Min = c.bounds.ClampFunding(s.Funding.Min)
	s.Funding.Max = c.bounds.ClampFunding(s.Funding.Max)
	if s.Funding.Min > s.Funding.Max {
		s.Funding.Min, s.Funding.Max = s.Funding.Max, s.Funding.Min
	}
	if s.PublicationType != domain.PublicationJournal {
		s.Indexing = domain.IndexingAll
	}
	c.state = s
	c.recompute()
	return nil
}

func (c *Controller) recompute() {
	start := time.Now()
	c.snapshot = buildSnapshot(c.dataset, c.state)
	if c.onRecompute != nil {
		c.onRecompute(c.state, time.Since(start))
	}
}
