package importer

import (
	"fmt"

	"github.com/nwaller/loadboard/internal/domain"
)

// ValidateRosterSchema checks the roster schema for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateRosterSchema(schema *RosterSchema) []error {
	var errs []error

	columnRefs := make(map[string]bool) // "group/column" pairs seen
	errs = append(errs, validateGroups(schema.Groups, columnRefs)...)
	errs = append(errs, validateStaff(schema.Staff, columnRefs)...)

	return errs
}

func validateGroups(groups []GroupImport, columnRefs map[string]bool) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, g := range groups {
		prefix := fmt.Sprintf("groups[%d]", i)

		if g.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[g.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate group id %q", prefix, g.ID))
		} else {
			seen[g.ID] = true
		}

		if len(g.Columns) == 0 {
			errs = append(errs, fmt.Errorf("%s.columns: group %q has no columns", prefix, g.ID))
		}
		colSeen := make(map[string]bool, len(g.Columns))
		for j, colID := range g.Columns {
			if colID == "" {
				errs = append(errs, fmt.Errorf("%s.columns[%d] is empty", prefix, j))
				continue
			}
			if colSeen[colID] {
				errs = append(errs, fmt.Errorf("%s.columns[%d]: duplicate column %q", prefix, j, colID))
				continue
			}
			colSeen[colID] = true
			columnRefs[g.ID+"/"+colID] = true
		}

		for colID, stat := range g.Stats {
			if !colSeen[colID] {
				errs = append(errs, fmt.Errorf("%s.stats: column %q not in group columns", prefix, colID))
			}
			if stat.Sections < 0 || stat.PeriodsPerCycle < 0 {
				errs = append(errs, fmt.Errorf("%s.stats[%s]: figures must be non-negative", prefix, colID))
			}
		}
	}

	return errs
}

func validateStaff(staff []StaffImport, columnRefs map[string]bool) []error {
	var errs []error

	for i, s := range staff {
		prefix := fmt.Sprintf("staff[%d]", i)

		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if !domain.ValidDivisions[s.Division] {
			errs = append(errs, fmt.Errorf("%s.division: invalid value %q", prefix, s.Division))
		}
		if s.Capacity < 0 {
			errs = append(errs, fmt.Errorf("%s.capacity must be non-negative", prefix))
		}

		courseSeen := make(map[string]bool, len(s.Assignments))
		for j, a := range s.Assignments {
			aPrefix := fmt.Sprintf("%s.assignments[%d]", prefix, j)

			if a.GroupID == "" {
				errs = append(errs, fmt.Errorf("%s.group_id is required", aPrefix))
			}
			if a.CourseID == "" {
				errs = append(errs, fmt.Errorf("%s.course_id is required", aPrefix))
			} else if courseSeen[a.CourseID] {
				errs = append(errs, fmt.Errorf("%s.course_id: duplicate course %q", aPrefix, a.CourseID))
			} else {
				courseSeen[a.CourseID] = true
			}

			if a.GroupID != "" && a.CourseID != "" && !columnRefs[a.GroupID+"/"+a.CourseID] {
				errs = append(errs, fmt.Errorf("%s: column %q not found in group %q", aPrefix, a.CourseID, a.GroupID))
			}

			if a.Load < 0 {
				errs = append(errs, fmt.Errorf("%s.load must be non-negative", aPrefix))
			}
			if a.StudentCount != nil && *a.StudentCount < 0 {
				errs = append(errs, fmt.Errorf("%s.student_count must be non-negative", aPrefix))
			}
		}
	}

	return errs
}
