package formatter

import (
	"fmt"
	"strings"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
)

// FormatStaffList renders the roster as a table with consumed and
// remaining load figures.
func FormatStaffList(staff []domain.StaffRecord, threshold int) string {
	headers := []string{"NAME", "DIVISION", "ROLE", "CAP", "USED", "LEFT"}
	aligns := []int{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}

	rows := make([][]string, 0, len(staff))
	for _, s := range staff {
		remaining := s.RemainingCapacity()
		rows = append(rows, []string{
			s.Name,
			string(s.Division),
			s.Role,
			fmt.Sprintf("%d", s.Capacity),
			fmt.Sprintf("%d", s.ConsumedLoad()),
			CapacityStyle(remaining, threshold).Render(fmt.Sprintf("%d", remaining)),
		})
	}
	return RenderTable(headers, rows, aligns)
}

// FormatGroupList renders the course group catalog.
func FormatGroupList(groups []domain.GroupDefinition) string {
	headers := []string{"ID", "LABEL", "ORDER", "COLUMNS", "FLAGS"}
	aligns := []int{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		var flags []string
		if g.Protected {
			flags = append(flags, "protected")
		}
		if g.Other {
			flags = append(flags, "other")
		}
		rows = append(rows, []string{
			GroupStyle(g.Color).Render(g.ID),
			g.Label,
			fmt.Sprintf("%d", g.DisplayOrder),
			strings.Join(g.ColumnIDs, ", "),
			strings.Join(flags, ", "),
		})
	}
	return RenderTable(headers, rows, aligns)
}

// FormatBoard renders a full board snapshot as a static table: one row
// per staff member, one column per visible course slot, followed by the
// totals footer. Used for the non-interactive board output.
func FormatBoard(snap *grid.Snapshot, threshold int) string {
	headers := make([]string, 0, len(snap.VisibleColumns)+3)
	aligns := make([]int, 0, cap(headers))
	headers = append(headers, "NAME")
	aligns = append(aligns, AlignLeft)
	for _, col := range snap.VisibleColumns {
		headers = append(headers, GroupStyle(col.Color).Render(col.Label))
		aligns = append(aligns, AlignRight)
	}
	headers = append(headers, "USED", "LEFT")
	aligns = append(aligns, AlignRight, AlignRight)

	rows := make([][]string, 0, len(snap.SortedRows)+1)
	for _, s := range snap.SortedRows {
		row := make([]string, 0, len(headers))
		row = append(row, s.Name)
		for _, col := range snap.VisibleColumns {
			row = append(row, boardCell(&s, col))
		}
		remaining := s.RemainingCapacity()
		row = append(row,
			fmt.Sprintf("%d", s.ConsumedLoad()),
			CapacityStyle(remaining, threshold).Render(fmt.Sprintf("%d", remaining)),
		)
		rows = append(rows, row)
	}

	// Totals footer.
	footer := make([]string, 0, len(headers))
	footer = append(footer, Bold("TOTAL"))
	for _, col := range snap.VisibleColumns {
		ct := snap.Totals.Columns[col.Key]
		footer = append(footer, Bold(fmt.Sprintf("%d", ct.LoadSum)))
	}
	footer = append(footer,
		Bold(fmt.Sprintf("%d", snap.Totals.Grand.ConsumedSum)),
		Bold(fmt.Sprintf("%d", snap.Totals.Grand.RemainingSum)),
	)
	rows = append(rows, footer)

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, aligns))
	b.WriteString("\n")
	b.WriteString(formatDivisionTotals(snap.Totals))
	return b.String()
}

func boardCell(s *domain.StaffRecord, col grid.ColumnRef) string {
	for _, a := range s.Assignments {
		if grid.ColumnKey(a.GroupID, a.CourseID) != col.Key {
			continue
		}
		cell := fmt.Sprintf("%d", a.Load)
		if a.ExcludedFromLoad {
			return Dim(cell + "x")
		}
		return cell
	}
	return Dim("·")
}

func formatDivisionTotals(t grid.Totals) string {
	var b strings.Builder
	for _, div := range []domain.Division{domain.DivisionMiddle, domain.DivisionHigh} {
		dt, ok := t.Divisions[div]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%s  %s staff, load %s, students %s\n",
			Bold(strings.ToUpper(string(div))),
			fmt.Sprintf("%d", dt.RowCount),
			fmt.Sprintf("%d", dt.LoadSum),
			fmt.Sprintf("%d", dt.StudentSum),
		))
	}
	b.WriteString(Dim(fmt.Sprintf("%d staff · capacity %d · consumed %d · remaining %d",
		t.Grand.RowCount, t.Grand.CapacitySum, t.Grand.ConsumedSum, t.Grand.RemainingSum)))
	return b.String()
}
