package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/repository"
)

type groupService struct {
	groups repository.GroupRepo
}

func NewGroupService(groups repository.GroupRepo) GroupService {
	return &groupService{groups: groups}
}

func (s *groupService) Create(ctx context.Context, g *domain.GroupDefinition) error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if g.Label == "" {
		g.Label = g.ID
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.groups.Create(ctx, g)
}

func (s *groupService) GetByID(ctx context.Context, id string) (*domain.GroupDefinition, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *groupService) List(ctx context.Context) ([]domain.GroupDefinition, error) {
	return s.groups.List(ctx)
}

func (s *groupService) Update(ctx context.Context, g *domain.GroupDefinition) error {
	g.UpdatedAt = time.Now().UTC()
	return s.groups.Update(ctx, g)
}

func (s *groupService) Delete(ctx context.Context, id string) error {
	return s.groups.Delete(ctx, id)
}
