package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/deptlens/internal/db"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/importer"
	"github.com/alexanderramin/deptlens/internal/mockdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallDataset = `
faculty:
  - id: 1
    name: Dr. Asha Rao
publications:
  - year: 2021
    faculty_ids: [1]
    count: 4
    type: conference
events:
  - year: 2022
    faculty_ids: [1]
    count: 1
    type: stc
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDatasetService_LoadEmbeddedByDefault(t *testing.T) {
	svc := NewDatasetService(DatasetLocations{DBPath: filepath.Join(t.TempDir(), "missing.db")})

	ds, src, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src.Kind)
	assert.Same(t, mockdata.MustDataset(), ds)
}

func TestDatasetService_LoadExplicitFile(t *testing.T) {
	path := writeFile(t, "small.yaml", smallDataset)
	svc := NewDatasetService(DatasetLocations{File: path})

	ds, src, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFile, src.Kind)
	assert.Equal(t, path, src.Location)
	assert.Equal(t, 2, ds.RecordCount())
}

func TestDatasetService_LoadInvalidFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "faculty:\n  - id: 0\n    name: X\n")
	svc := NewDatasetService(DatasetLocations{File: path})

	_, _, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, importer.ErrInvalidDataset)
}

func TestDatasetService_ImportThenLoadFromSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store", "deptlens.db")
	path := writeFile(t, "small.yaml", smallDataset)
	svc := NewDatasetService(DatasetLocations{DBPath: dbPath})
	ctx := context.Background()

	load, err := svc.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, load.RecordCount)
	assert.Equal(t, 1, load.FacultyCount)

	ds, src, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceSQLite, src.Kind)
	assert.Equal(t, load.ID, src.LoadID)
	assert.Equal(t, path, src.Origin)
	require.Len(t, ds.Publications, 1)
	assert.Equal(t, domain.PublicationConference, ds.Publications[0].Type)
}

func TestDatasetService_EmptyStoreFallsBackToEmbedded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deptlens.db")
	svc := NewDatasetService(DatasetLocations{DBPath: dbPath})
	ctx := context.Background()

	// The store exists but holds no import.
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	_, src, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src.Kind)
}

func TestDatasetService_ImportRejectsInvalidFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deptlens.db")
	svc := NewDatasetService(DatasetLocations{DBPath: dbPath})

	_, err := svc.Import(context.Background(), writeFile(t, "bad.yaml", "faculty: []\n"))
	assert.ErrorIs(t, err, importer.ErrInvalidDataset)
}

func TestDatasetService_ImportRequiresDBPath(t *testing.T) {
	svc := NewDatasetService(DatasetLocations{})
	_, err := svc.Import(context.Background(), writeFile(t, "small.yaml", smallDataset))
	assert.Error(t, err)
}

func TestDatasetService_Validate(t *testing.T) {
	svc := NewDatasetService(DatasetLocations{})
	ctx := context.Background()

	problems, err := svc.Validate(ctx, writeFile(t, "ok.yaml", smallDataset))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = svc.Validate(ctx, writeFile(t, "bad.yaml",
		"faculty:\n  - id: 1\n    name: A\nprojects:\n  - id: 1\n    year: 2020\n    faculty_ids: [2]\n    funding: -10\n"))
	require.NoError(t, err)
	assert.Len(t, problems, 2)

	_, err = svc.Validate(ctx, writeFile(t, "broken.yaml", "faculty: [\n"))
	assert.Error(t, err)
}

func TestDatasetService_Export(t *testing.T) {
	svc := NewDatasetService(DatasetLocations{File: writeFile(t, "small.yaml", smallDataset)})

	var buf bytes.Buffer
	src, err := svc.Export(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, SourceFile, src.Kind)

	again, err := importer.Load(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, again.RecordCount())
}

func TestDatasetService_ObservesUseCases(t *testing.T) {
	rec := &recordingObserver{}
	svc := NewDatasetService(DatasetLocations{File: filepath.Join(t.TempDir(), "nope.yaml")}, rec)

	_, _, err := svc.Load(context.Background())
	require.Error(t, err)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, "load-dataset", ev.Name)
	assert.False(t, ev.Success)
	assert.True(t, errors.Is(ev.Err, os.ErrNotExist))
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	r.events = append(r.events, ev)
}
