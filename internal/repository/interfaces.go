package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nwaller/loadboard/internal/domain"
)

var (
	// ErrNotFound marks lookups of entities that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrProtectedGroup marks deletion attempts on a protected group.
	ErrProtectedGroup = errors.New("group is protected and cannot be deleted")
)

type StaffRepo interface {
	Create(ctx context.Context, s *domain.StaffRecord) error
	GetByID(ctx context.Context, id string) (*domain.StaffRecord, error)
	List(ctx context.Context) ([]domain.StaffRecord, error)
	Update(ctx context.Context, s *domain.StaffRecord) error
	// ReplaceAssignments swaps the whole assignment list; partial patches
	// are not supported.
	ReplaceAssignments(ctx context.Context, staffID string, assignments []domain.AssignmentRecord) (*domain.StaffRecord, error)
	SetCapacity(ctx context.Context, staffID string, capacity int) (*domain.StaffRecord, error)
	Delete(ctx context.Context, id string) error
}

type GroupRepo interface {
	Create(ctx context.Context, g *domain.GroupDefinition) error
	GetByID(ctx context.Context, id string) (*domain.GroupDefinition, error)
	List(ctx context.Context) ([]domain.GroupDefinition, error)
	Update(ctx context.Context, g *domain.GroupDefinition) error
	Delete(ctx context.Context, id string) error
}

// PreferenceRepo is a generic named-value store. Values are opaque JSON;
// the board only uses it to round-trip view state across sessions.
type PreferenceRepo interface {
	Get(ctx context.Context, key string, def json.RawMessage) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
}
