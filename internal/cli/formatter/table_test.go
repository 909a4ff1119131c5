package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "LOAD"},
		[][]string{
			{"Amara", "6"},
			{"B", "12"},
		},
		[]int{AlignLeft, AlignRight},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two rows

	// Every line ends at the same column.
	assert.Contains(t, lines[2], "Amara")
	assert.Contains(t, lines[3], "B")

	// Right-aligned numbers line up on their last digit.
	sixAt := strings.Index(lines[2], "6")
	twelveEnd := strings.Index(lines[3], "12") + 1
	assert.Equal(t, sixAt, twelveEnd)
}

func TestRenderTable_ShortRowPadsMissingCells(t *testing.T) {
	out := RenderTable(
		[]string{"A", "B", "C"},
		[][]string{{"x"}},
		nil,
	)
	assert.Contains(t, out, "x")
}
