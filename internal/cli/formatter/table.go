package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column alignment for RenderTable.
const (
	AlignLeft = iota
	AlignRight
)

// RenderTable renders an aligned table with a header separator line.
// Headers are rendered with the Header style. Column widths are the
// maximum visible width found across headers and rows; aligns may be
// nil (all left) or shorter than the header list (remainder left).
func RenderTable(headers []string, rows [][]string, aligns []int) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Visible widths, so styled cells with ANSI escapes measure correctly.
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	align := func(col int) int {
		if col < len(aligns) {
			return aligns[col]
		}
		return AlignLeft
	}

	const colGap = 2

	var b strings.Builder

	writeCell := func(col int, cell string, styled string, last bool) {
		pad := widths[col] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		if align(col) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(styled)
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			return
		}
		b.WriteString(styled)
		if !last {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}

	for i, h := range headers {
		writeCell(i, h, StyleHeader.Render(h), i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(i, cell, cell, i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}
