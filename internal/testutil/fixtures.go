package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/nwaller/loadboard/internal/domain"
)

// Staff options
type StaffOption func(*domain.StaffRecord)

func WithDivision(d domain.Division) StaffOption {
	return func(s *domain.StaffRecord) {
		s.Division = d
	}
}

func WithRole(role string) StaffOption {
	return func(s *domain.StaffRecord) {
		s.Role = role
	}
}

func WithCapacity(c int) StaffOption {
	return func(s *domain.StaffRecord) {
		s.Capacity = c
	}
}

func WithAssignments(assignments ...domain.AssignmentRecord) StaffOption {
	return func(s *domain.StaffRecord) {
		s.Assignments = assignments
	}
}

// NewTestStaff builds a middle-division staff record with sensible defaults.
func NewTestStaff(name string, opts ...StaffOption) *domain.StaffRecord {
	now := time.Now().UTC()
	s := &domain.StaffRecord{
		ID:        uuid.New().String(),
		Name:      name,
		Division:  domain.DivisionMiddle,
		Capacity:  20,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestAssignment builds an assignment for a column of the given group.
func NewTestAssignment(groupID, courseID string, load int) domain.AssignmentRecord {
	return domain.AssignmentRecord{
		CourseID:   courseID,
		CourseName: courseID,
		GroupID:    groupID,
		Load:       load,
	}
}

// Group options
type GroupOption func(*domain.GroupDefinition)

func WithDisplayOrder(order int) GroupOption {
	return func(g *domain.GroupDefinition) {
		g.DisplayOrder = order
	}
}

func WithColumns(columnIDs ...string) GroupOption {
	return func(g *domain.GroupDefinition) {
		g.ColumnIDs = columnIDs
	}
}

func WithColumnStat(columnID string, stat domain.ColumnStat) GroupOption {
	return func(g *domain.GroupDefinition) {
		if g.Stats == nil {
			g.Stats = make(map[string]domain.ColumnStat)
		}
		g.Stats[columnID] = stat
	}
}

func WithProtected() GroupOption {
	return func(g *domain.GroupDefinition) {
		g.Protected = true
	}
}

func WithOther() GroupOption {
	return func(g *domain.GroupDefinition) {
		g.Other = true
	}
}

// NewTestGroup builds a group definition with the given id as its label.
func NewTestGroup(id string, opts ...GroupOption) *domain.GroupDefinition {
	now := time.Now().UTC()
	g := &domain.GroupDefinition{
		ID:        id,
		Label:     id,
		Color:     "blue",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
