package domain

import "time"

// GroupDefinition is a named partition of course-slot columns.
// Relocation never crosses group boundaries.
type GroupDefinition struct {
	ID           string
	Label        string
	Color        string // palette token resolved by the presentation layer
	DisplayOrder int
	ColumnIDs    []string
	Stats        map[string]ColumnStat // columnID -> catalog reference figures
	Protected    bool                  // cannot be deleted
	Other        bool                  // catch-all group; labels get a marker suffix

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatFor returns the catalog stat for a column, if one was supplied.
func (g *GroupDefinition) StatFor(columnID string) (ColumnStat, bool) {
	st, ok := g.Stats[columnID]
	return st, ok
}

// HasColumn reports whether the column id belongs to this group.
func (g *GroupDefinition) HasColumn(columnID string) bool {
	for _, id := range g.ColumnIDs {
		if id == columnID {
			return true
		}
	}
	return false
}

// ColumnStat is externally supplied reference data for one column.
// The engine displays these figures but never validates against them.
type ColumnStat struct {
	Sections           int
	PeriodsPerCycle    int
	RemainingPeriod    int
	StudentsPerSection int
}
