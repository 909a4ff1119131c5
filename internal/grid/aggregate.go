package grid

import (
	"github.com/nwaller/loadboard/internal/domain"
)

// ColumnTotals accumulates per-(group,column) figures over visible rows.
// SectionCount and RemainingPeriods come from catalog reference data and
// are display figures only; RemainingPeriods is distinct from a staff
// member's own remaining capacity.
type ColumnTotals struct {
	LoadSum          int
	StudentSum       int
	SectionCount     int
	RemainingPeriods int
}

// DivisionTotals accumulates per-division figures over visible rows.
type DivisionTotals struct {
	RowCount   int
	LoadSum    int
	StudentSum int
}

// GrandTotals accumulates board-wide figures over visible rows.
type GrandTotals struct {
	RowCount     int
	CapacitySum  int
	ConsumedSum  int
	RemainingSum int
	StudentSum   int
}

// Totals is the full nested aggregate table for one pipeline run.
// It is rebuilt from scratch on every invocation; there is no
// incremental update path.
//
// Scopes differ on purpose: Grand consumed and remaining sums are
// row-derived and include every assignment a visible row carries, while
// Columns and Divisions load sums count only assignments resolving to a
// visible column. Hiding a group changes the column and division sums
// but never a staff member's consumed load.
type Totals struct {
	Columns   map[string]ColumnTotals
	Divisions map[domain.Division]DivisionTotals
	Grand     GrandTotals
}

// Aggregate walks visibleRows once and produces the nested totals table.
// An assignment contributes to a column bucket only when its
// (group, column) pair resolves to a currently-visible column; its load
// and student figures roll up into the owning division and the grand
// totals at the same time. Assignments flagged excluded-from-load keep
// their column presence and student counts but never count toward load
// or consumed sums. O(rows x assignments per row).
func Aggregate(visibleRows []domain.StaffRecord, visibleColumns []ColumnRef) Totals {
	t := Totals{
		Columns:   make(map[string]ColumnTotals, len(visibleColumns)),
		Divisions: make(map[domain.Division]DivisionTotals),
	}

	// Seed every visible column so empty columns still render catalog
	// figures, and index them for assignment resolution.
	visible := make(map[string]struct{}, len(visibleColumns))
	for _, col := range visibleColumns {
		ct := ColumnTotals{}
		if col.Stat != nil {
			ct.SectionCount = col.Stat.Sections
		}
		t.Columns[col.Key] = ct
		visible[col.Key] = struct{}{}
	}

	for _, row := range visibleRows {
		div := t.Divisions[row.Division]
		div.RowCount++

		t.Grand.RowCount++
		t.Grand.CapacitySum += row.Capacity
		t.Grand.ConsumedSum += row.ConsumedLoad()
		t.Grand.RemainingSum += row.RemainingCapacity()

		for _, a := range row.Assignments {
			key := ColumnKey(a.GroupID, a.CourseID)
			if _, ok := visible[key]; !ok {
				continue // column hidden or unknown to the catalog
			}

			ct := t.Columns[key]
			if !a.ExcludedFromLoad {
				ct.LoadSum += a.Load
				div.LoadSum += a.Load
			}
			if a.StudentCount != nil {
				ct.StudentSum += *a.StudentCount
				div.StudentSum += *a.StudentCount
				t.Grand.StudentSum += *a.StudentCount
			}
			t.Columns[key] = ct
		}

		t.Divisions[row.Division] = div
	}

	// Catalog remaining-periods is the published figure minus observed load.
	for _, col := range visibleColumns {
		if col.Stat == nil {
			continue
		}
		ct := t.Columns[col.Key]
		ct.RemainingPeriods = col.Stat.PeriodsPerCycle - ct.LoadSum
		t.Columns[col.Key] = ct
	}

	return t
}
