package grid

// WindowSpec is the contiguous row index range to materialize for the
// current scroll position, plus the filler extents standing in for the
// rows outside it. Indices are half-open: rows [StartIndex, EndIndex).
type WindowSpec struct {
	StartIndex     int
	EndIndex       int
	LeadingSpacer  int
	TrailingSpacer int
}

// Window computes the materialized row range for a viewport. The range
// covers every row intersecting [scrollOffset, scrollOffset+viewportSize)
// at the estimated item size, extended by overscan rows on each side and
// clamped to [0, rowCount). Spacer sizes preserve total extent:
//
//	LeadingSpacer + (EndIndex-StartIndex)*estimatedItemSize + TrailingSpacer
//	  == rowCount * estimatedItemSize
//
// The computation depends only on its scalar inputs, never on row
// content, so hosts can re-run it on every scroll without touching data.
func Window(rowCount, scrollOffset, viewportSize, estimatedItemSize, overscan int) WindowSpec {
	if rowCount <= 0 || estimatedItemSize <= 0 {
		return WindowSpec{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if viewportSize < 0 {
		viewportSize = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	first := scrollOffset / estimatedItemSize
	// Last row whose extent intersects the viewport bottom edge.
	last := (scrollOffset + viewportSize + estimatedItemSize - 1) / estimatedItemSize

	start := clampInt(first-overscan, 0, rowCount)
	end := clampInt(last+overscan, 0, rowCount)
	if end < start {
		end = start
	}

	return WindowSpec{
		StartIndex:     start,
		EndIndex:       end,
		LeadingSpacer:  start * estimatedItemSize,
		TrailingSpacer: (rowCount - end) * estimatedItemSize,
	}
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
