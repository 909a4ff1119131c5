package grid

import (
	"sort"

	"github.com/nwaller/loadboard/internal/domain"
)

// Row-level sort column keys. Any other key is treated as a per-column
// key produced by ColumnKey and compares rows by that column's load.
const (
	SortByName      = "name"
	SortByDivision  = "division"
	SortByRole      = "role"
	SortByCapacity  = "capacity"
	SortByConsumed  = "consumed"
	SortByRemaining = "remaining"
)

// NextDirection cycles the sort direction for a column click: the same
// column walks none -> asc -> desc -> none, a different column resets to
// ascending.
func NextDirection(sameColumn bool, cur domain.SortDirection) domain.SortDirection {
	if !sameColumn {
		return domain.SortAsc
	}
	switch cur {
	case domain.SortNone:
		return domain.SortAsc
	case domain.SortAsc:
		return domain.SortDesc
	default:
		return domain.SortNone
	}
}

// Sort orders rows by one active column. Text columns compare by raw
// codepoint order, numeric columns numerically; ties keep their original
// relative order. SortNone (or an empty column) returns the rows in
// their incoming order. The input slice is never mutated.
func Sort(rows []domain.StaffRecord, columnKey string, direction domain.SortDirection) []domain.StaffRecord {
	out := make([]domain.StaffRecord, len(rows))
	copy(out, rows)

	if direction == domain.SortNone || columnKey == "" {
		return out
	}

	less := lessFunc(columnKey)
	sort.SliceStable(out, func(i, j int) bool {
		if direction == domain.SortDesc {
			i, j = j, i
		}
		return less(&out[i], &out[j])
	})
	return out
}

func lessFunc(columnKey string) func(a, b *domain.StaffRecord) bool {
	switch columnKey {
	case SortByName:
		return func(a, b *domain.StaffRecord) bool { return a.Name < b.Name }
	case SortByDivision:
		return func(a, b *domain.StaffRecord) bool { return a.Division < b.Division }
	case SortByRole:
		return func(a, b *domain.StaffRecord) bool { return a.Role < b.Role }
	case SortByCapacity:
		return func(a, b *domain.StaffRecord) bool { return a.Capacity < b.Capacity }
	case SortByConsumed:
		return func(a, b *domain.StaffRecord) bool { return a.ConsumedLoad() < b.ConsumedLoad() }
	case SortByRemaining:
		return func(a, b *domain.StaffRecord) bool { return a.RemainingCapacity() < b.RemainingCapacity() }
	default:
		return func(a, b *domain.StaffRecord) bool {
			return columnLoad(a, columnKey) < columnLoad(b, columnKey)
		}
	}
}

// columnLoad is the row's summed load in one column; rows without the
// column report -1 so they sort ahead of zero-load assignments ascending.
func columnLoad(s *domain.StaffRecord, columnKey string) int {
	total, found := 0, false
	for _, a := range s.Assignments {
		if ColumnKey(a.GroupID, a.CourseID) == columnKey {
			total += a.Load
			found = true
		}
	}
	if !found {
		return -1
	}
	return total
}
