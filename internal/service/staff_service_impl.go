package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/repository"
)

type staffService struct {
	staff repository.StaffRepo
}

func NewStaffService(staff repository.StaffRepo) StaffService {
	return &staffService{staff: staff}
}

func (s *staffService) Create(ctx context.Context, rec *domain.StaffRecord) error {
	if rec.Name == "" {
		return fmt.Errorf("staff name is required")
	}
	if !domain.ValidDivisions[string(rec.Division)] {
		return fmt.Errorf("invalid division %q", rec.Division)
	}
	if rec.Capacity < 0 {
		return fmt.Errorf("capacity must be non-negative, got %d", rec.Capacity)
	}
	if err := validateAssignments(rec.Assignments); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return s.staff.Create(ctx, rec)
}

func (s *staffService) GetByID(ctx context.Context, id string) (*domain.StaffRecord, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *staffService) List(ctx context.Context) ([]domain.StaffRecord, error) {
	return s.staff.List(ctx)
}

func (s *staffService) ReplaceAssignments(ctx context.Context, staffID string, assignments []domain.AssignmentRecord) (*domain.StaffRecord, error) {
	if err := validateAssignments(assignments); err != nil {
		return nil, err
	}
	return s.staff.ReplaceAssignments(ctx, staffID, assignments)
}

func (s *staffService) SetCapacity(ctx context.Context, staffID string, capacity int) (*domain.StaffRecord, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("capacity must be non-negative, got %d", capacity)
	}
	return s.staff.SetCapacity(ctx, staffID, capacity)
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	return s.staff.Delete(ctx, id)
}

func validateAssignments(assignments []domain.AssignmentRecord) error {
	seen := make(map[string]bool, len(assignments))
	for i, a := range assignments {
		if a.CourseID == "" {
			return fmt.Errorf("assignment %d: course id is required", i)
		}
		if a.GroupID == "" {
			return fmt.Errorf("assignment %d: group id is required", i)
		}
		if a.Load < 0 {
			return fmt.Errorf("assignment %d: load must be non-negative, got %d", i, a.Load)
		}
		if a.StudentCount != nil && *a.StudentCount < 0 {
			return fmt.Errorf("assignment %d: student count must be non-negative", i)
		}
		if seen[a.CourseID] {
			return fmt.Errorf("assignment %d: duplicate course id %q", i, a.CourseID)
		}
		seen[a.CourseID] = true
	}
	return nil
}
