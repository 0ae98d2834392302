package cli

import (
	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// textView shows read-only content in a scrollable viewport.
type textView struct {
	state   *SharedState
	title   string
	content string
	vp      viewport.Model
	sized   bool
}

func newTextView(state *SharedState, title, content string) *textView {
	vp := viewport.New(0, 0)
	vp.SetContent(content)
	return &textView{state: state, title: title, content: content, vp: vp}
}

func newDatasetInfoView(state *SharedState) *textView {
	ds := state.Dashboard.Dataset()
	content := formatter.FormatDatasetInfo(state.Source, ds, domain.DeriveBounds(ds))
	return newTextView(state, "Dataset", content)
}

func newKeyHelpView(state *SharedState) *textView {
	rows := [][]string{
		{"tab / shift+tab", "Focus next / previous panel"},
		{"c", "Cycle the focused panel's chart: bar, pie, line"},
		{"[ ]", "Move the first year back / forward"},
		{"{ }", "Move the last year back / forward"},
		{"t", "Cycle publication type"},
		{"i", "Cycle journal indexing (journal type only)"},
		{"s", "Cycle project status"},
		{"p", "Cycle patent status"},
		{"e", "Cycle event type"},
		{"f", "Edit faculty, years and funding"},
		{"l", "Pick a faculty member"},
		{"d", "Dataset details"},
		{"x", "Reset all filters"},
		{"q", "Quit"},
	}
	for _, r := range rows {
		r[0] = formatter.StyleBlue.Render(r[0])
	}
	content := formatter.RenderBox("Keyboard", formatter.RenderTable([]string{"KEY", "ACTION"}, rows))
	return newTextView(state, "Keys", content)
}

func (v *textView) ID() ViewID    { return ViewText }
func (v *textView) Title() string { return v.title }
func (v *textView) Init() tea.Cmd { return nil }

func (v *textView) ShortHelp() []key.Binding {
	if v.sized && v.vp.TotalLineCount() > v.vp.Height {
		return []key.Binding{key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll"))}
	}
	return nil
}

func (v *textView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.resize(size.Width, size.Height-5)
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *textView) resize(w, h int) {
	v.vp.Width = max(w, 20)
	v.vp.Height = max(h, 1)
	v.sized = true
}

func (v *textView) View() string {
	if !v.sized {
		if v.state != nil && v.state.Height > 0 {
			v.resize(v.state.Width, v.state.ContentHeight())
		} else {
			return "\n" + v.content
		}
	}
	return "\n" + v.vp.View()
}
