package dashboard

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixtureDataset() *domain.Dataset {
	return &domain.Dataset{
		Faculty: []domain.Faculty{
			{ID: 1, Name: "Dr. Asha Rao"},
			{ID: 2, Name: "Dr. Vikram Menon"},
		},
		Publications: []domain.Publication{
			{Year: 2016, FacultyIDs: []int{1}, Count: 2, Type: domain.PublicationJournal, Indexing: domain.IndexingSCI},
			{Year: 2020, FacultyIDs: []int{1, 2}, Count: 3, Type: domain.PublicationJournal, Indexing: domain.IndexingScopus},
			{Year: 2020, FacultyIDs: []int{2}, Count: 2, Type: domain.PublicationConference},
			{Year: 2022, FacultyIDs: []int{2}, Count: 1, Type: domain.PublicationBook},
		},
		Projects: []domain.Project{
			{ID: 1, Year: 2019, FacultyIDs: []int{1}, Status: domain.ProjectCompleted, Funding: 50000},
			{ID: 2, Year: 2021, FacultyIDs: []int{2}, Status: domain.ProjectOngoing, Funding: 1200000},
		},
		Patents: []domain.Patent{
			{ID: 1, Year: 2021, FacultyIDs: []int{1}, Status: domain.PatentFiled},
		},
		Events: []domain.Event{
			{Year: 2022, FacultyIDs: []int{2}, Count: 2, Type: domain.EventWorkshop},
		},
	}
}

func newController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	ds := fixtureDataset()
	return New(ds, domain.DeriveBounds(ds), opts...)
}

func TestNew_DefaultWindowIsTrailingFiveYears(t *testing.T) {
	c := newController(t)

	s := c.State()
	assert.Equal(t, 2018, s.StartYear)
	assert.Equal(t, 2022, s.EndYear)
	assert.Equal(t, analytics.AllFaculty, s.FacultyID)
	assert.Equal(t, domain.PublicationAll, s.PublicationType)
	assert.Equal(t, analytics.FundingRange{Min: 50000, Max: 1200000}, s.Funding)
	assert.Equal(t, 3, c.Snapshot().Counts.Publications, "2016 record is outside the window")
}

func TestNew_WindowWiderThanDataStartsAtMinYear(t *testing.T) {
	c := newController(t, WithWindowYears(20))
	assert.Equal(t, 2016, c.State().StartYear)
}

func TestNew_InvalidWindowIgnored(t *testing.T) {
	c := newController(t, WithWindowYears(0))
	assert.Equal(t, 2018, c.State().StartYear)
}

func TestSetStartYear_PastEndPullsEndUp(t *testing.T) {
	c := newController(t)
	c.SetEndYear(2020)
	require.Equal(t, 2020, c.State().EndYear)

	c.SetStartYear(2022)

	assert.Equal(t, 2022, c.State().StartYear)
	assert.Equal(t, 2022, c.State().EndYear)
}

func TestSetEndYear_BeforeStartPullsStartDown(t *testing.T) {
	c := newController(t)

	c.SetEndYear(2017)

	assert.Equal(t, 2017, c.State().StartYear)
	assert.Equal(t, 2017, c.State().EndYear)
}

func TestSetYears_ClampedToBounds(t *testing.T) {
	c := newController(t)

	c.SetStartYear(1990)
	assert.Equal(t, 2016, c.State().StartYear)

	c.SetEndYear(2099)
	assert.Equal(t, 2022, c.State().EndYear)

	c.ShiftStartYear(-5)
	assert.Equal(t, 2016, c.State().StartYear)
	c.ShiftEndYear(-1)
	assert.Equal(t, 2021, c.State().EndYear)
}

func TestSetFaculty(t *testing.T) {
	c := newController(t)

	require.NoError(t, c.SetFaculty(1))
	snap := c.Snapshot()
	assert.Equal(t, "Dr. Asha Rao", snap.FacultyName)
	assert.Equal(t, "Dr. Asha Rao's Publications", snap.PublicationsTitle())
	assert.Equal(t, 1, snap.Counts.Publications)
	assert.Equal(t, 1, snap.Counts.Patents)
	assert.Equal(t, 0, snap.Counts.Events)
	assert.True(t, snap.Events.NoData())

	require.NoError(t, c.SetFaculty(analytics.AllFaculty))
	assert.Equal(t, "", c.Snapshot().FacultyName)
	assert.Equal(t, "Research Publications", c.Snapshot().PublicationsTitle())
}

func TestSetFaculty_UnknownLeavesStateUnchanged(t *testing.T) {
	c := newController(t)
	before := c.State()

	err := c.SetFaculty(42)

	assert.True(t, errors.Is(err, ErrUnknownFaculty))
	assert.Equal(t, before, c.State())
}

func TestSetPublicationType_ResetsIndexing(t *testing.T) {
	c := newController(t)
	c.SetPublicationType(domain.PublicationJournal)
	require.NoError(t, c.SetIndexing(domain.IndexingScopus))
	assert.Equal(t, 1, c.Snapshot().Counts.Publications)

	c.SetPublicationType(domain.PublicationConference)

	assert.Equal(t, domain.IndexingAll, c.State().Indexing)
	assert.Equal(t, 1, c.Snapshot().Counts.Publications)
}

func TestSetIndexing_RequiresJournal(t *testing.T) {
	c := newController(t)

	err := c.SetIndexing(domain.IndexingSCI)
	assert.ErrorIs(t, err, ErrIndexingUnavailable)
	assert.Equal(t, domain.IndexingAll, c.State().Indexing)

	assert.NoError(t, c.SetIndexing(domain.IndexingAll), "all is always accepted")
}

func TestSetFundingRange_ClampsAndSwaps(t *testing.T) {
	c := newController(t)

	c.SetFundingRange(5000000, 0)

	assert.Equal(t, analytics.FundingRange{Min: 50000, Max: 1200000}, c.State().Funding)

	c.SetFundingRange(100000, 2000000)
	assert.Equal(t, analytics.FundingRange{Min: 100000, Max: 1200000}, c.State().Funding)
	assert.Equal(t, 1, c.Snapshot().Counts.Projects)
}

func TestSetFundingRange_NaNFallsToLowerBound(t *testing.T) {
	c := newController(t)

	c.SetFundingRange(math.NaN(), 2000000)

	assert.Equal(t, analytics.FundingRange{Min: 50000, Max: 1200000}, c.State().Funding)
	assert.Equal(t, 2, c.Snapshot().Counts.Projects)
}

func TestCategorySetters_RecomputeSnapshot(t *testing.T) {
	c := newController(t)

	c.SetProjectStatus(domain.ProjectOngoing)
	assert.Equal(t, "Ongoing Consultancies/Research Projects", c.Snapshot().Projects.Title)
	assert.Equal(t, 1, c.Snapshot().Counts.Projects)

	c.SetPatentStatus(domain.PatentGranted)
	assert.True(t, c.Snapshot().Patents.NoData())

	c.SetEventType(domain.EventWorkshop)
	assert.Equal(t, 1, c.Snapshot().Counts.Events)
	assert.Equal(t, 2.0, c.Snapshot().Events.SliceTotal())
}

func TestReset_RestoresDefaults(t *testing.T) {
	c := newController(t)
	want := c.State()

	require.NoError(t, c.SetFaculty(2))
	c.SetStartYear(2016)
	c.SetEventType(domain.EventGIAN)
	c.Reset()

	assert.Equal(t, want, c.State())
	assert.Equal(t, want, c.Snapshot().State)
}

func TestApply_NormalisesState(t *testing.T) {
	c := newController(t)
	s := c.State()
	s.StartYear, s.EndYear = 2030, 2000
	s.Funding = analytics.FundingRange{Min: 2e6, Max: 0}
	s.PublicationType = domain.PublicationBook
	s.Indexing = domain.IndexingSCI

	require.NoError(t, c.Apply(s))

	got := c.State()
	assert.Equal(t, 2022, got.StartYear)
	assert.Equal(t, 2022, got.EndYear)
	assert.Equal(t, analytics.FundingRange{Min: 50000, Max: 1200000}, got.Funding)
	assert.Equal(t, domain.IndexingAll, got.Indexing)

	s.FacultyID = 99
	assert.ErrorIs(t, c.Apply(s), ErrUnknownFaculty)
	assert.Equal(t, got, c.State())
}

func TestRecomputeHook_CalledOnEveryChange(t *testing.T) {
	var calls int
	c := newController(t, WithRecomputeHook(func(analytics.FilterState, time.Duration) { calls++ }))
	require.Equal(t, 1, calls, "initial snapshot")

	c.SetStartYear(2019)
	c.SetEventType(domain.EventSTC)
	assert.Equal(t, 3, calls)
}

func TestEmptyDataset(t *testing.T) {
	ds := &domain.Dataset{}
	c := New(ds, domain.DeriveBounds(ds))

	snap := c.Snapshot()
	assert.True(t, snap.Publications.NoData())
	assert.True(t, snap.Projects.NoData())
	assert.True(t, snap.Patents.NoData())
	assert.True(t, snap.Events.NoData())
	assert.True(t, snap.ProjectFunding.NoData())
}
