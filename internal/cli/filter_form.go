package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/deptlens/internal/analytics"
	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// deptlensHuhTheme returns a huh theme using the Gruvbox palette.
func deptlensHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// filterFormValues is the editable part of the filter state.
type filterFormValues struct {
	facultyID  int
	startYear  int
	endYear    int
	fundingMin string
	fundingMax string
}

func (f filterFormValues) apply(s analytics.FilterState) (analytics.FilterState, error) {
	lo, err := parseRupees(f.fundingMin)
	if err != nil {
		return s, fmt.Errorf("minimum funding: %w", err)
	}
	hi, err := parseRupees(f.fundingMax)
	if err != nil {
		return s, fmt.Errorf("maximum funding: %w", err)
	}

	s.FacultyID = f.facultyID
	s.StartYear, s.EndYear = f.startYear, f.endYear
	if s.StartYear > s.EndYear {
		s.StartYear, s.EndYear = s.EndYear, s.StartYear
	}
	// Reversed funding bounds are swapped by the controller.
	s.Funding = analytics.FundingRange{Min: lo, Max: hi}
	return s, nil
}

func validateRupees(s string) error {
	_, err := parseRupees(s)
	return err
}

// newFilterFormView edits faculty, year window and funding range in one
// form and applies them together.
func newFilterFormView(state *SharedState) View {
	c := state.Dashboard
	cur := c.State()
	bounds := c.Bounds()

	vals := &filterFormValues{
		facultyID:  cur.FacultyID,
		startYear:  cur.StartYear,
		endYear:    cur.EndYear,
		fundingMin: strconv.FormatFloat(cur.Funding.Min, 'f', -1, 64),
		fundingMax: strconv.FormatFloat(cur.Funding.Max, 'f', -1, 64),
	}

	facultyOpts := []huh.Option[int]{huh.NewOption("All faculty", analytics.AllFaculty)}
	for _, f := range c.Dataset().Faculty {
		facultyOpts = append(facultyOpts, huh.NewOption(f.Name, f.ID))
	}

	yearOpts := make([]huh.Option[int], 0, len(bounds.Years))
	for _, y := range bounds.Years {
		yearOpts = append(yearOpts, huh.NewOption(strconv.Itoa(y), y))
	}
	if len(yearOpts) == 0 {
		yearOpts = append(yearOpts, huh.NewOption(strconv.Itoa(cur.StartYear), cur.StartYear))
	}

	fundingHint := fmt.Sprintf("%s – %s  (e.g. 45000, ₹45,000 or 12.5L)",
		formatter.FormatCurrency(bounds.MinFunding), formatter.FormatCurrency(bounds.MaxFunding))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Faculty").
				Options(facultyOpts...).
				Value(&vals.facultyID),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("From year").
				Options(yearOpts...).
				Value(&vals.startYear),
			huh.NewSelect[int]().
				Title("To year").
				Options(yearOpts...).
				Value(&vals.endYear),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum funding").
				Description(fundingHint).
				Value(&vals.fundingMin).
				Validate(validateRupees),
			huh.NewInput().
				Title("Maximum funding").
				Value(&vals.fundingMax).
				Validate(validateRupees),
		),
	).WithTheme(deptlensHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return applyFilterForm(state, *vals)
	}
	return newWizardView(state, "Filters", form, done)
}

func applyFilterForm(state *SharedState, vals filterFormValues) tea.Cmd {
	c := state.Dashboard
	next, err := vals.apply(c.State())
	if err == nil {
		err = c.Apply(next)
	}
	if err != nil {
		return notice(formatter.StyleRed.Render("Error: " + err.Error()))
	}
	return notice(formatter.Dim("Filters applied."))
}
