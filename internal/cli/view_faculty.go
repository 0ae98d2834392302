package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// facultyListView lists faculty members with their totals. Enter scopes the
// dashboard to the highlighted member; the first row clears the scope.
type facultyListView struct {
	state  *SharedState
	totals []analytics.FacultyTotals
	cursor int // 0 is "All faculty"
}

func newFacultyListView(state *SharedState) *facultyListView {
	v := &facultyListView{
		state:  state,
		totals: analytics.TotalsByFaculty(state.Dashboard.Dataset()),
	}
	current := state.Dashboard.State().FacultyID
	for i, t := range v.totals {
		if t.Faculty.ID == current {
			v.cursor = i + 1
		}
	}
	return v
}

func (v *facultyListView) ID() ViewID    { return ViewFacultyList }
func (v *facultyListView) Title() string { return "Faculty" }
func (v *facultyListView) Init() tea.Cmd { return nil }

func (v *facultyListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "filter")),
	}
}

func (v *facultyListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.totals) {
			v.cursor++
		}
	case "enter":
		id, name := analytics.AllFaculty, "all faculty"
		if v.cursor > 0 {
			f := v.totals[v.cursor-1].Faculty
			id, name = f.ID, f.Name
		}
		if err := v.state.Dashboard.SetFaculty(id); err != nil {
			return v, notice(formatter.StyleRed.Render("Error: " + err.Error()))
		}
		return v, tea.Batch(popView(), notice(formatter.Dim("Showing "+name+".")))
	}
	return v, nil
}

func (v *facultyListView) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("FACULTY") + "\n\n")

	row := func(i int, name, detail string) {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, nameStyle.Render(padRight(name, 28)), detail)
	}

	row(0, "All faculty", "")
	for i, t := range v.totals {
		row(i+1, t.Faculty.Name, formatter.Dim(fmt.Sprintf("%3d pubs  %2d projects %8s  %2d patents  %3d events",
			t.Publications, t.Projects, formatter.FormatCurrency(t.Funding), t.Patents, t.Events)))
	}
	return b.String()
}

// padRight pads s to width visible columns, truncating with an ellipsis.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
