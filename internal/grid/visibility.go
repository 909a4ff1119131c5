package grid

import (
	"sort"

	"github.com/nwaller/loadboard/internal/domain"
)

// VisibleRows excludes rows whose division is collapsed, preserving order.
func VisibleRows(rows []domain.StaffRecord, collapsedDivisions map[domain.Division]bool) []domain.StaffRecord {
	out := make([]domain.StaffRecord, 0, len(rows))
	for _, r := range rows {
		if collapsedDivisions[r.Division] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// VisibleColumns flattens every column of every non-collapsed group into
// display order: groups by DisplayOrder, columns by their position in the
// group's column list. Labels and catalog stats are resolved here once so
// downstream consumers never traverse group definitions.
func VisibleColumns(groups []domain.GroupDefinition, collapsedGroups map[string]bool) []ColumnRef {
	ordered := make([]domain.GroupDefinition, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	var cols []ColumnRef
	for _, g := range ordered {
		if collapsedGroups[g.ID] {
			continue
		}
		for _, colID := range g.ColumnIDs {
			ref := ColumnRef{
				GroupID:  g.ID,
				ColumnID: colID,
				Key:      ColumnKey(g.ID, colID),
				Label:    ParseColumnLabel(colID, g.ID),
				Color:    g.Color,
			}
			if g.Other {
				ref.Label += otherGroupMarker
			}
			if st, ok := g.StatFor(colID); ok {
				ref.Stat = &st
			}
			cols = append(cols, ref)
		}
	}
	return cols
}
