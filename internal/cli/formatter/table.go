package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align sets how a table column pads its cells.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	return RenderAlignedTable(headers, rows, nil)
}

// RenderAlignedTable is RenderTable with per-column alignment. Columns
// without an entry in align are left-aligned.
func RenderAlignedTable(headers []string, rows [][]string, align []Align) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Visible widths, so styled cells line up.
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2

	alignOf := func(i int) Align {
		if i < len(align) {
			return align[i]
		}
		return AlignLeft
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			if style != nil {
				cell = style(cell)
			}
			last := i == cols-1
			if alignOf(i) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if !last {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row, nil)
	}

	return b.String()
}
