package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/mockdata"
	"github.com/alexanderramin/deptlens/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetRepo_EmptyStore(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	ds, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ds.Faculty)
	assert.Equal(t, 0, ds.RecordCount())

	_, err = repo.LastLoad(ctx)
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDatasetRepo_ReplaceThenLoadRoundTrips(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	want := testutil.NewTestDataset()

	load, err := repo.Replace(ctx, want, "fixtures.yaml")
	require.NoError(t, err)
	_, err = uuid.Parse(load.ID)
	assert.NoError(t, err, "load id is a uuid")
	assert.Equal(t, 2, load.FacultyCount)
	assert.Equal(t, want.RecordCount(), load.RecordCount)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}

	last, err := repo.LastLoad(ctx)
	require.NoError(t, err)
	assert.Equal(t, load.ID, last.ID)
	assert.Equal(t, "fixtures.yaml", last.Source)
	assert.True(t, load.LoadedAt.Equal(last.LoadedAt))
}

func TestDatasetRepo_MockDataRoundTrips(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	want := mockdata.MustDataset()

	_, err := repo.Replace(ctx, want, "embedded")
	require.NoError(t, err)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestDatasetRepo_PreservesRecordOrderAndUncategorised(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	want := &domain.Dataset{
		Faculty: []domain.Faculty{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		Publications: []domain.Publication{
			testutil.NewTestPublication(2022, ""),
			testutil.NewTestPublication(2018, domain.PublicationBook, testutil.WithPubFaculty(2, 1)),
		},
		Projects: []domain.Project{
			testutil.NewTestProject(9, 2020, ""),
			testutil.NewTestProject(3, 2019, domain.ProjectCompleted),
		},
		Patents: []domain.Patent{},
		Events:  []domain.Event{},
	}

	_, err := repo.Replace(ctx, want, "inline")
	require.NoError(t, err)
	got, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Publications, got.Publications)
	assert.Equal(t, []int{2, 1}, got.Publications[1].FacultyIDs, "faculty id order kept")
	assert.Equal(t, 9, got.Projects[0].ID, "import order kept")
	assert.Equal(t, domain.ProjectStatus(""), got.Projects[0].Status)
}

func TestDatasetRepo_ReplaceSwapsPreviousDataset(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Replace(ctx, testutil.NewTestDataset(), "first")
	require.NoError(t, err)

	second := &domain.Dataset{
		Faculty: []domain.Faculty{{ID: 5, Name: "Solo"}},
		Events:  []domain.Event{testutil.NewTestEvent(2024, domain.EventSTC, testutil.WithEventFaculty(5))},
	}
	_, err = repo.Replace(ctx, second, "second")
	require.NoError(t, err)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Faculty, got.Faculty)
	assert.Empty(t, got.Publications)
	assert.Empty(t, got.Projects)
	require.Len(t, got.Events, 1)
	assert.Equal(t, []int{5}, got.Events[0].FacultyIDs)

	last, err := repo.LastLoad(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", last.Source)
}

func TestDatasetRepo_ReplaceRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	original := testutil.NewTestDataset()
	_, err := NewSQLiteDatasetRepo(database).Replace(ctx, original, "original")
	require.NoError(t, err)

	boom := errors.New("disk full")
	for _, failOn := range []int32{1, 7, 12} {
		uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: failOn, Err: boom}
		repo := NewSQLiteDatasetRepoWithUoW(database, uow)

		_, err := repo.Replace(ctx, mockdata.MustDataset(), "broken")
		require.ErrorIs(t, err, boom, "fail on exec %d", failOn)

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(original, got); diff != "" {
			t.Errorf("fail on exec %d: previous dataset should survive (-want +got):\n%s", failOn, diff)
		}
	}
}

func TestDatasetRepo_ReplaceRejectsUnknownFacultyReference(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ds := &domain.Dataset{
		Faculty:  []domain.Faculty{{ID: 1, Name: "A"}},
		Patents:  []domain.Patent{testutil.NewTestPatent(1, 2020, domain.PatentFiled, 4)},
		Projects: []domain.Project{},
	}

	_, err := repo.Replace(context.Background(), ds, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linking patent 1 to faculty 4")

	_, err = repo.LastLoad(context.Background())
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDatasetRepo_ConcurrentLoadsOnFileDB(t *testing.T) {
	database, _ := testutil.NewFileTestDB(t)
	repo := NewSQLiteDatasetRepo(database)
	ctx := context.Background()
	want := mockdata.MustDataset()
	_, err := repo.Replace(ctx, want, "embedded")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := repo.Load(ctx)
			if err != nil {
				errs <- err
				return
			}
			if got.RecordCount() != want.RecordCount() {
				errs <- errors.New("short read")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDatasetRepo_LoadCancelled(t *testing.T) {
	repo := NewSQLiteDatasetRepo(testutil.NewTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.Error(t, err)
}
