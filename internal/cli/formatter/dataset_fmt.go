package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/repository"
	"github.com/alexanderramin/deptlens/internal/service"
)

// FormatDatasetInfo describes where the dataset came from and what it holds.
func FormatDatasetInfo(src *service.DatasetSource, ds *domain.Dataset, b domain.Bounds) string {
	var sb strings.Builder
	sb.WriteString(Header("Dataset"))
	sb.WriteString("\n")

	field := func(label, value string) {
		fmt.Fprintf(&sb, "%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value)
	}

	field("Source", StylePurple.Render(string(src.Kind))+" "+src.Location)
	if src.Kind == service.SourceSQLite {
		field("Imported", fmt.Sprintf("%s from %s", HumanTimestamp(src.LoadedAt), src.Origin))
		field("Load ID", Dim(src.LoadID))
	}
	field("Faculty", fmt.Sprint(len(ds.Faculty)))
	field("Records", fmt.Sprintf("%d publication tallies, %d projects, %d patents, %d event tallies",
		len(ds.Publications), len(ds.Projects), len(ds.Patents), len(ds.Events)))

	if len(b.Years) == 0 {
		field("Years", Dim("none"))
	} else {
		field("Years", fmt.Sprintf("%s (%d distinct)", FormatYearRange(b.MinYear, b.MaxYear), len(b.Years)))
	}
	if len(ds.Projects) > 0 {
		field("Funding", FormatCurrency(b.MinFunding)+" – "+FormatCurrency(b.MaxFunding))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatValidation reports the outcome of validating path.
func FormatValidation(path string, problems []error) string {
	if len(problems) == 0 {
		return StyleGreen.Render("✔ ") + path + " is a valid dataset"
	}
	var sb strings.Builder
	sb.WriteString(StyleRed.Render(fmt.Sprintf("✖ %s in %s", Plural(len(problems), "problem"), path)))
	for _, p := range problems {
		sb.WriteString("\n  ")
		sb.WriteString(Dim("•"))
		sb.WriteString(" ")
		sb.WriteString(p.Error())
	}
	return sb.String()
}

// FormatImport confirms a completed import.
func FormatImport(load *repository.DatasetLoad, dbPath string) string {
	return fmt.Sprintf("%s Imported %s and %s from %s into %s\n%s",
		StyleGreen.Render("✔"),
		Plural(load.FacultyCount, "faculty member"),
		Plural(load.RecordCount, "record"),
		load.Source, dbPath,
		Dim("load "+load.ID))
}
