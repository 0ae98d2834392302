package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// sparkBlocks are the eight heights of a sparkline cell, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderShareBar renders a proportion bar like [████░░░░] 45% in the given
// colour. Out-of-range fractions are clamped.
func RenderShareBar(frac float64, width int, hex string) string {
	frac = clampUnit(frac)
	if width < 2 {
		width = 2
	}

	filled := min(int(frac*float64(width)+0.5), width)
	bar := CategoryStyle(hex).Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))

	return fmt.Sprintf("[%s] %3.0f%%", bar, frac*100)
}

// renderBar draws a solid bar scaled to value/maxValue of width cells.
// A non-zero value always gets at least one cell.
func renderBar(value, maxValue float64, width int, hex string) string {
	if value <= 0 || maxValue <= 0 || width <= 0 {
		return ""
	}
	n := min(int(value/maxValue*float64(width)+0.5), width)
	n = max(n, 1)
	return CategoryStyle(hex).Render(strings.Repeat(filledBlock, n))
}

// sparkline maps each value to a block height relative to maxValue. Zero
// values render as a dim baseline.
func sparkline(values []float64, maxValue float64, cell int, hex string) string {
	if cell < 1 {
		cell = 1
	}
	style := CategoryStyle(hex)
	var b strings.Builder
	for _, v := range values {
		if v <= 0 || maxValue <= 0 {
			b.WriteString(StyleDim.Render(strings.Repeat("·", cell)))
			continue
		}
		idx := int(clampUnit(v/maxValue)*float64(len(sparkBlocks)-1) + 0.5)
		b.WriteString(style.Render(strings.Repeat(string(sparkBlocks[idx]), cell)))
	}
	return b.String()
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
