package service

import (
	"context"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
)

type StaffService interface {
	Create(ctx context.Context, s *domain.StaffRecord) error
	GetByID(ctx context.Context, id string) (*domain.StaffRecord, error)
	List(ctx context.Context) ([]domain.StaffRecord, error)
	ReplaceAssignments(ctx context.Context, staffID string, assignments []domain.AssignmentRecord) (*domain.StaffRecord, error)
	SetCapacity(ctx context.Context, staffID string, capacity int) (*domain.StaffRecord, error)
	Delete(ctx context.Context, id string) error
}

type GroupService interface {
	Create(ctx context.Context, g *domain.GroupDefinition) error
	GetByID(ctx context.Context, id string) (*domain.GroupDefinition, error)
	List(ctx context.Context) ([]domain.GroupDefinition, error)
	Update(ctx context.Context, g *domain.GroupDefinition) error
	Delete(ctx context.Context, id string) error
}

// BoardService runs the grid pipeline over the stored roster and applies
// relocations atomically.
type BoardService interface {
	Board(ctx context.Context, view domain.ViewState, vp grid.Viewport) (*grid.Snapshot, error)
	Relocate(ctx context.Context, req grid.Relocation) (*grid.Result, error)
}

// ViewStateService round-trips the board view state across sessions.
type ViewStateService interface {
	Load(ctx context.Context) (domain.ViewState, error)
	Save(ctx context.Context, view domain.ViewState) error
}

// ImportService loads a roster JSON file into the database.
type ImportService interface {
	ImportRoster(ctx context.Context, path string) (*ImportResult, error)
}
