package grid

import (
	"github.com/nwaller/loadboard/internal/domain"
)

// Viewport describes the host's scroll position for row windowing.
type Viewport struct {
	ScrollOffset int
	Size         int
	ItemSize     int
	Overscan     int
}

// Snapshot is the immutable output of one pipeline run. Hosts render
// from it and discard it wholesale on the next recomputation; nothing in
// it aliases the engine's inputs.
type Snapshot struct {
	VisibleRows    []domain.StaffRecord
	VisibleColumns []ColumnRef
	SortedRows     []domain.StaffRecord
	Window         WindowSpec
	Totals         Totals
}

// Recompute runs the full derivation pipeline over one row/group/view
// snapshot: visibility, sorting, windowing and aggregation. It is
// synchronous and lock-free; hosts serialize mutations so that run N
// always observes the state produced by run N-1.
func Recompute(rows []domain.StaffRecord, groups []domain.GroupDefinition, view domain.ViewState, vp Viewport) Snapshot {
	visibleRows := VisibleRows(rows, view.CollapsedDivisions)
	visibleCols := VisibleColumns(groups, view.CollapsedGroups)
	sorted := Sort(visibleRows, view.SortColumn, view.SortDirection)

	return Snapshot{
		VisibleRows:    visibleRows,
		VisibleColumns: visibleCols,
		SortedRows:     sorted,
		Window:         Window(len(sorted), vp.ScrollOffset, vp.Size, vp.ItemSize, vp.Overscan),
		Totals:         Aggregate(visibleRows, visibleCols),
	}
}
