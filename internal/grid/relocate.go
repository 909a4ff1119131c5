package grid

import (
	"github.com/nwaller/loadboard/internal/domain"
)

// Relocation is a discrete request to move one assignment from a source
// cell to a destination cell. Gesture handling lives entirely in the
// presentation layer; the engine only sees this request/response pair.
type Relocation struct {
	SourceStaffID string
	CourseID      string
	DestStaffID   string
	DestGroupID   string
	DestColumnID  string
}

// Options controls optional relocation rules.
type Options struct {
	// EnforceCapacity rejects moves that would push the destination
	// staff member over capacity. Off by default: the product decision
	// is to allow negative remaining capacity and signal it visually.
	EnforceCapacity bool
}

// Result carries the mutated records of an accepted relocation. Source
// is always present; Dest is nil for a same-staff column change. Callers
// must apply both records or neither.
type Result struct {
	Source domain.StaffRecord
	Dest   *domain.StaffRecord
}

// Records returns the mutated records as a slice for uniform write-back.
func (r *Result) Records() []domain.StaffRecord {
	if r.Dest == nil {
		return []domain.StaffRecord{r.Source}
	}
	return []domain.StaffRecord{r.Source, *r.Dest}
}

// Validate decides a relocation request against the full (unfiltered)
// row set. Rules run in order and the first failure wins:
//
//  1. identical (staff, course) source and destination: rejected no-op
//  2. destination column outside the assignment's group: rejected
//  3. destination staff already carrying the destination course: rejected
//  4. optionally, destination over capacity (Options.EnforceCapacity)
//
// On acceptance the returned Result holds fresh record snapshots; the
// inputs are never mutated. The moved assignment keeps its load,
// exclusion flag and student count; its course id and display name are
// rewritten to the destination column.
func Validate(req Relocation, rows []domain.StaffRecord, groups []domain.GroupDefinition, opts Options) (*Result, error) {
	source := findStaff(rows, req.SourceStaffID)
	if source == nil {
		return nil, rejectf(ErrUnknownStaff, "source staff %q not found", req.SourceStaffID)
	}
	moved := source.AssignmentFor(req.CourseID)
	if moved == nil {
		return nil, rejectf(ErrUnknownAssignment, "staff %q carries no assignment for course %q", req.SourceStaffID, req.CourseID)
	}

	destGroup := findGroup(groups, req.DestGroupID)
	if destGroup == nil || !destGroup.HasColumn(req.DestColumnID) {
		return nil, rejectf(ErrUnknownColumn, "column %q not found in group %q", req.DestColumnID, req.DestGroupID)
	}

	if req.DestStaffID == req.SourceStaffID && req.DestColumnID == req.CourseID {
		return nil, rejectf(ErrNoopMove, "assignment %q is already in that cell", req.CourseID)
	}

	if destGroup.ID != moved.GroupID {
		return nil, rejectf(ErrCrossGroupMove, "cannot move %q from group %q to group %q",
			req.CourseID, moved.GroupID, destGroup.ID)
	}

	relocated := *moved
	relocated.CourseID = req.DestColumnID
	relocated.CourseName = ParseColumnLabel(req.DestColumnID, destGroup.ID)
	relocated.GroupID = destGroup.ID

	if req.DestStaffID == req.SourceStaffID {
		// Course ids are unique per staff member; a move may not land on a
		// column the member already carries.
		if source.AssignmentFor(req.DestColumnID) != nil {
			return nil, rejectf(ErrOccupiedCell, "%s already carries %q", source.Name, req.DestColumnID)
		}
		// Column change only: replace the assignment list wholesale with
		// the single entry rewritten.
		updated := *source
		updated.Assignments = source.CloneAssignments()
		for i := range updated.Assignments {
			if updated.Assignments[i].CourseID == req.CourseID {
				updated.Assignments[i] = relocated
				break
			}
		}
		return &Result{Source: updated}, nil
	}

	dest := findStaff(rows, req.DestStaffID)
	if dest == nil {
		return nil, rejectf(ErrUnknownStaff, "destination staff %q not found", req.DestStaffID)
	}

	if dest.AssignmentFor(req.DestColumnID) != nil {
		return nil, rejectf(ErrOccupiedCell, "%s already carries %q", dest.Name, req.DestColumnID)
	}

	if opts.EnforceCapacity && !relocated.ExcludedFromLoad {
		if dest.ConsumedLoad()+relocated.Load > dest.Capacity {
			return nil, rejectf(ErrCapacityExceeded, "moving %q would put %s at %d/%d",
				req.CourseID, dest.Name, dest.ConsumedLoad()+relocated.Load, dest.Capacity)
		}
	}

	updatedSource := *source
	updatedSource.Assignments = removeAssignment(source.Assignments, req.CourseID)

	updatedDest := *dest
	updatedDest.Assignments = append(dest.CloneAssignments(), relocated)

	return &Result{Source: updatedSource, Dest: &updatedDest}, nil
}

func findStaff(rows []domain.StaffRecord, id string) *domain.StaffRecord {
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i]
		}
	}
	return nil
}

func findGroup(groups []domain.GroupDefinition, id string) *domain.GroupDefinition {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i]
		}
	}
	return nil
}

func removeAssignment(list []domain.AssignmentRecord, courseID string) []domain.AssignmentRecord {
	out := make([]domain.AssignmentRecord, 0, len(list))
	for _, a := range list {
		if a.CourseID == courseID {
			continue
		}
		out = append(out, a)
	}
	return out
}
