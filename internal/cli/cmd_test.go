package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/importer"
	"github.com/alexanderramin/deptlens/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeDataset stores ds as YAML in a temp dir and returns the path.
func writeDataset(t *testing.T, ds *domain.Dataset) string {
	t.Helper()
	data, err := yaml.Marshal(importer.FromDataset(ds))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// testApp returns an App rooted in a temp config dir that never opens the TUI.
func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("DEPTLENS_DATASET", "")
	t.Setenv("DEPTLENS_CHART", "")
	return &App{
		ConfigDir:     t.TempDir(),
		IsInteractive: func() bool { return false },
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	t.Cleanup(func() { _ = app.Close() })
	return ansi.Strip(buf.String()), err
}

// summary runs "summary" against the shared test dataset.
func summary(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := writeDataset(t, testutil.NewTestDataset())
	return executeCmd(t, testApp(t), append([]string{"summary", "--dataset", path}, args...)...)
}

// --- Root command ---

func TestRootCmd_NonInteractivePrintsSummary(t *testing.T) {
	app := testApp(t)
	path := writeDataset(t, testutil.NewTestDataset())

	out, err := executeCmd(t, app, "--dataset", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DEPARTMENT RESEARCH DASHBOARD")
	assert.Contains(t, out, "RESEARCH PUBLICATIONS")
}

func TestRootCmd_EmbeddedDatasetByDefault(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "dataset", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded")
}

// --- summary ---

func TestSummaryCmd_Default(t *testing.T) {
	out, err := summary(t)
	require.NoError(t, err)

	assert.Contains(t, out, "Years 2019–2023")
	assert.Contains(t, out, "Faculty All faculty")
	assert.Contains(t, out, "Matching 5 publication records · 3 projects · 2 patents · 3 event records")
	for _, title := range []string{"RESEARCH PUBLICATIONS", "CONSULTANCIES/RESEARCH PROJECTS", "PATENTS FILED/GRANTED", "FACULTY EVENTS"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Sanctioned funding")
}

func TestSummaryCmd_FacultyByName(t *testing.T) {
	out, err := summary(t, "--faculty", "menon")
	require.NoError(t, err)

	assert.Contains(t, out, "Faculty Dr. Vikram Menon")
	assert.Contains(t, out, "DR. VIKRAM MENON'S PUBLICATIONS")
	assert.Contains(t, out, "Matching 3 publication records · 2 projects · 1 patent · 2 event records")
}

func TestSummaryCmd_FacultyByID(t *testing.T) {
	out, err := summary(t, "--faculty", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Faculty Dr. Asha Rao")
}

func TestSummaryCmd_UnknownFaculty(t *testing.T) {
	_, err := summary(t, "--faculty", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown faculty")

	_, err = summary(t, "--faculty", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown faculty: 42")
}

func TestSummaryCmd_AmbiguousFaculty(t *testing.T) {
	_, err := summary(t, "--faculty", "Dr.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestSummaryCmd_YearWindow(t *testing.T) {
	out, err := summary(t, "--from", "2020", "--to", "2021")
	require.NoError(t, err)
	assert.Contains(t, out, "Years 2020–2021")
	assert.Contains(t, out, "Matching 3 publication records")
}

func TestSummaryCmd_ToOnlyPullsStartDown(t *testing.T) {
	out, err := summary(t, "--to", "2018")
	require.NoError(t, err)
	// 2018 clamps to the first dataset year.
	assert.Contains(t, out, "Years 2019")
	assert.NotContains(t, out, "2019–")
}

func TestSummaryCmd_FromAfterTo(t *testing.T) {
	_, err := summary(t, "--from", "2023", "--to", "2020")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from 2023 is after --to 2020")
}

func TestSummaryCmd_IndexingRequiresJournal(t *testing.T) {
	_, err := summary(t, "--indexing", "scopus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--indexing")
	assert.Contains(t, err.Error(), "journal")

	out, err := summary(t, "--pub-type", "Journal", "--indexing", "scopus")
	require.NoError(t, err)
	assert.Contains(t, out, "Publications Journal / Scopus")
	assert.Contains(t, out, "Matching 1 publication record ·")
}

func TestSummaryCmd_InvalidEnum(t *testing.T) {
	_, err := summary(t, "--event-type", "seminar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: all, conference, stc, workshop, gian")

	_, err = summary(t, "--chart", "all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: bar, pie, line")
}

func TestSummaryCmd_Only(t *testing.T) {
	out, err := summary(t, "--only", "patents,events")
	require.NoError(t, err)
	assert.Contains(t, out, "PATENTS FILED/GRANTED")
	assert.Contains(t, out, "FACULTY EVENTS")
	assert.NotContains(t, out, "RESEARCH PUBLICATIONS")
	assert.NotContains(t, out, "Sanctioned funding")

	_, err = summary(t, "--only", "grants")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"grants"`)
}

func TestSummaryCmd_PieChartAndTable(t *testing.T) {
	out, err := summary(t, "--only", "patents", "--chart", "pie", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "Filed:")
	assert.Contains(t, out, "Granted:")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Total")
}

func TestSummaryCmd_FundingRange(t *testing.T) {
	out, err := summary(t, "--funding-min", "1L", "--funding-max", "₹5,00,000")
	require.NoError(t, err)
	assert.Contains(t, out, "Funding ₹1.0L – ₹5.0L")
	assert.Contains(t, out, "· 1 project ·")

	_, err = summary(t, "--funding-min", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--funding-min")

	for _, bad := range []string{"NaN", "Inf"} {
		_, err = summary(t, "--funding-min", bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "--funding-min")
		assert.Contains(t, err.Error(), `invalid amount "`+bad+`"`)
	}
}

func TestSummaryCmd_NoDataMessage(t *testing.T) {
	out, err := summary(t, "--from", "2023", "--to", "2023", "--only", "patents")
	require.NoError(t, err)
	assert.Contains(t, out, "No data available for the selected filters.")
}

func TestSummaryCmd_ChartFromConfigFile(t *testing.T) {
	app := testApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.ConfigDir, "config.yaml"), []byte("chart: pie\n"), 0o644))
	path := writeDataset(t, testutil.NewTestDataset())

	out, err := executeCmd(t, app, "summary", "--dataset", path, "--only", "patents")
	require.NoError(t, err)
	assert.Contains(t, out, "Granted:")
}

// --- faculty ---

func TestFacultyCmd(t *testing.T) {
	path := writeDataset(t, testutil.NewTestDataset())
	out, err := executeCmd(t, testApp(t), "faculty", "--dataset", path)
	require.NoError(t, err)

	assert.Contains(t, out, "FACULTY")
	assert.Contains(t, out, "PUBLICATIONS")
	assert.Contains(t, out, "Dr. Asha Rao")
	assert.Contains(t, out, "Dr. Vikram Menon")
}

// --- dataset ---

func TestDatasetInfo_File(t *testing.T) {
	path := writeDataset(t, testutil.NewTestDataset())
	out, err := executeCmd(t, testApp(t), "dataset", "info", "--dataset", path)
	require.NoError(t, err)

	assert.Contains(t, out, "file "+path)
	assert.Contains(t, out, "5 publication tallies, 3 projects, 2 patents, 3 event tallies")
	assert.Contains(t, out, "2019–2023 (5 distinct)")
}

func TestDatasetValidate(t *testing.T) {
	good := writeDataset(t, testutil.NewTestDataset())
	out, err := executeCmd(t, testApp(t), "dataset", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid dataset")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(
		"faculty:\n  - id: 1\n    name: A\npatents:\n  - id: 1\n    year: 2020\n    faculty_ids: [5]\n    status: lapsed\n"), 0o644))

	out, err = executeCmd(t, testApp(t), "dataset", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 2 problems")
	assert.Contains(t, out, "✖ 2 problems in "+bad)
	assert.Contains(t, out, "patents[0].faculty_ids: faculty 5 not found")
	assert.Contains(t, out, `patents[0].status: invalid value "lapsed"`)
}

func TestDatasetValidate_Unreadable(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "dataset", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDatasetImport_ThenLoadsFromSQLite(t *testing.T) {
	app := testApp(t)
	path := writeDataset(t, testutil.NewTestDataset())

	out, err := executeCmd(t, app, "dataset", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 faculty members and 13 records")
	assert.Contains(t, out, filepath.Join(app.ConfigDir, "deptlens.db"))

	out, err = executeCmd(t, &App{ConfigDir: app.ConfigDir, IsInteractive: app.IsInteractive}, "dataset", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "Load ID")
}

func TestDatasetImport_RejectsInvalidFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("faculty: []\n"), 0o644))

	_, err := executeCmd(t, testApp(t), "dataset", "import", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, importer.ErrInvalidDataset)
}

func TestDatasetExport(t *testing.T) {
	path := writeDataset(t, testutil.NewTestDataset())

	out, err := executeCmd(t, testApp(t), "dataset", "export", "--dataset", path)
	require.NoError(t, err)
	ds, err := importer.Load([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, testutil.NewTestDataset().RecordCount(), ds.RecordCount())

	target := filepath.Join(t.TempDir(), "out.yaml")
	out, err = executeCmd(t, testApp(t), "dataset", "export", "--dataset", path, "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported file dataset to "+target)

	ds, err = importer.LoadDatasetFile(target)
	require.NoError(t, err)
	assert.Len(t, ds.Faculty, 2)
}

func TestDatasetExport_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")

	target := filepath.Join(dir, "out.yaml")
	_, err := executeCmd(t, testApp(t), "dataset", "export", "--dataset", missing, "-o", target)
	require.Error(t, err)
	_, statErr := os.Stat(target)
	assert.ErrorIs(t, statErr, os.ErrNotExist)

	existing := filepath.Join(dir, "keep.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("previous"), 0o644))
	_, err = executeCmd(t, testApp(t), "dataset", "export", "--dataset", missing, "-o", existing)
	require.Error(t, err)
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data), "a failed export keeps the old file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files are left behind")
	assert.Equal(t, "keep.yaml", entries[0].Name())
}
