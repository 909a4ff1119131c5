package domain

import "time"

// StaffRecord is one row of the assignment grid: a staff member with a
// load capacity and the course assignments currently placed on them.
// Assignments are mutated only by whole-list replacement; records are
// value snapshots, never modified in place.
type StaffRecord struct {
	ID          string
	Name        string
	Division    Division
	Role        string
	Capacity    int
	Assignments []AssignmentRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsumedLoad sums the load of all assignments that count toward capacity.
func (s *StaffRecord) ConsumedLoad() int {
	total := 0
	for _, a := range s.Assignments {
		if !a.ExcludedFromLoad {
			total += a.Load
		}
	}
	return total
}

// RemainingCapacity is capacity minus consumed load. May be negative;
// over-allocation is signalled visually, not clamped.
func (s *StaffRecord) RemainingCapacity() int {
	return s.Capacity - s.ConsumedLoad()
}

// AssignmentFor returns the assignment referencing the given course id,
// or nil if the staff member does not carry it.
func (s *StaffRecord) AssignmentFor(courseID string) *AssignmentRecord {
	for i := range s.Assignments {
		if s.Assignments[i].CourseID == courseID {
			return &s.Assignments[i]
		}
	}
	return nil
}

// CloneAssignments returns a copy of the assignment list safe to mutate.
func (s *StaffRecord) CloneAssignments() []AssignmentRecord {
	out := make([]AssignmentRecord, len(s.Assignments))
	copy(out, s.Assignments)
	return out
}

// AssignmentRecord places one course slot on a staff member. CourseName
// and GroupID are denormalized from the catalog at creation time so the
// grid can render without a catalog lookup; a later catalog rename does
// not rewrite existing assignments.
type AssignmentRecord struct {
	CourseID         string
	CourseName       string
	GroupID          string
	Load             int
	ExcludedFromLoad bool
	StudentCount     *int
}
