package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleYAML = `
faculty:
  - id: 1
    name: Dr. Asha Rao
  - id: 2
    name: Dr. Vikram Menon
publications:
  - year: 2021
    faculty_ids: [1, 2]
    count: 3
    type: journal
    indexing: scopus
projects:
  - id: 10
    year: 2020
    faculty_ids: [2]
    status: completed
    funding: 125000
patents:
  - id: 4
    year: 2022
    faculty_ids: [1]
    status: granted
events:
  - year: 2023
    faculty_ids: [2]
    count: 2
    type: workshop
`

func TestConvert_MinimalSchema(t *testing.T) {
	ds := Convert(validMinimalSchema())

	require.Len(t, ds.Faculty, 2)
	assert.Equal(t, domain.Faculty{ID: 1, Name: "Dr. Asha Rao"}, ds.Faculty[0])

	require.Len(t, ds.Publications, 1)
	assert.Equal(t, domain.PublicationJournal, ds.Publications[0].Type)
	assert.Equal(t, domain.IndexingSCI, ds.Publications[0].Indexing)
	assert.Equal(t, []int{1, 2}, ds.Publications[0].FacultyIDs)

	require.Len(t, ds.Projects, 1)
	assert.Equal(t, domain.ProjectOngoing, ds.Projects[0].Status)
	assert.Equal(t, 250000.0, ds.Projects[0].Funding)

	require.Len(t, ds.Patents, 1)
	assert.Equal(t, domain.PatentFiled, ds.Patents[0].Status)
	require.Len(t, ds.Events, 1)
	assert.Equal(t, domain.EventGIAN, ds.Events[0].Type)
}

func TestConvert_DoesNotAliasFacultyIDs(t *testing.T) {
	s := validMinimalSchema()
	ds := Convert(s)

	s.Publications[0].FacultyIDs[0] = 99
	assert.Equal(t, 1, ds.Publications[0].FacultyIDs[0])
}

func TestParse_YAML(t *testing.T) {
	schema, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Empty(t, ValidateSchema(schema))

	ds := Convert(schema)
	assert.Equal(t, 10, ds.Projects[0].ID)
	assert.Equal(t, domain.ProjectCompleted, ds.Projects[0].Status)
	assert.Equal(t, domain.EventWorkshop, ds.Events[0].Type)
}

func TestParse_JSON(t *testing.T) {
	data := `{"faculty":[{"id":1,"name":"A"}],"publications":[{"year":2020,"faculty_ids":[1],"count":2,"type":"book"}]}`

	ds, err := Load([]byte(data))
	require.NoError(t, err)
	require.Len(t, ds.Publications, 1)
	assert.Equal(t, domain.PublicationBook, ds.Publications[0].Type)
	assert.Empty(t, ds.Projects)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("faculty:\n  - id: 1\n    name: A\n    email: a@x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoad_InvalidDataset(t *testing.T) {
	_, err := Load([]byte("faculty:\n  - id: 1\n    name: A\nevents:\n  - year: 2020\n    faculty_ids: [3]\n    count: 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), "faculty 3 not found")
}

func TestLoadDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	ds, err := LoadDatasetFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.RecordCount())

	_, err = LoadDatasetFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromDataset_RoundTripsThroughYAML(t *testing.T) {
	want, err := Load([]byte(sampleYAML))
	require.NoError(t, err)

	out, err := yaml.Marshal(FromDataset(want))
	require.NoError(t, err)
	got, err := Load(out)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}
