package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// RosterSchema is the top-level JSON structure for roster import.
type RosterSchema struct {
	Groups []GroupImport `json:"groups"`
	Staff  []StaffImport `json:"staff"`
}

// GroupImport defines a course group and its columns in the import file.
type GroupImport struct {
	ID           string                `json:"id"`
	Label        string                `json:"label,omitempty"`
	Color        string                `json:"color,omitempty"`
	DisplayOrder int                   `json:"display_order"`
	Columns      []string              `json:"columns"`
	Stats        map[string]StatImport `json:"stats,omitempty"`
	Protected    bool                  `json:"protected,omitempty"`
	Other        bool                  `json:"other,omitempty"`
}

// StatImport defines catalog reference figures for one column.
type StatImport struct {
	Sections           int `json:"sections"`
	PeriodsPerCycle    int `json:"periods_per_cycle"`
	RemainingPeriod    int `json:"remaining_period,omitempty"`
	StudentsPerSection int `json:"students_per_section,omitempty"`
}

// StaffImport defines a staff member and their assignments.
type StaffImport struct {
	Name        string             `json:"name"`
	Division    string             `json:"division"`
	Role        string             `json:"role,omitempty"`
	Capacity    int                `json:"capacity"`
	Assignments []AssignmentImport `json:"assignments,omitempty"`
}

// AssignmentImport defines one course placement in the import file.
type AssignmentImport struct {
	GroupID          string `json:"group_id"`
	CourseID         string `json:"course_id"`
	CourseName       string `json:"course_name,omitempty"`
	Load             int    `json:"load"`
	ExcludedFromLoad bool   `json:"excluded_from_load,omitempty"`
	StudentCount     *int   `json:"student_count,omitempty"`
}

// LoadRosterSchema reads and parses a roster import JSON file.
func LoadRosterSchema(path string) (*RosterSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema RosterSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
