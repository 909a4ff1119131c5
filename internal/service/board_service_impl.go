package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nwaller/loadboard/internal/db"
	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
	"github.com/nwaller/loadboard/internal/repository"
)

type boardService struct {
	staff  repository.StaffRepo
	groups repository.GroupRepo
	uow    db.UnitOfWork
	opts   grid.Options
}

// NewBoardService wires the grid pipeline to the stored roster.
// opts carries the relocation policy (capacity enforcement off by default).
func NewBoardService(staff repository.StaffRepo, groups repository.GroupRepo, uow db.UnitOfWork, opts grid.Options) BoardService {
	return &boardService{staff: staff, groups: groups, uow: uow, opts: opts}
}

// Board loads the roster and groups and runs one pipeline pass, returning
// a single immutable snapshot. Assignments referencing courses absent
// from the catalog snapshot render from their denormalized fields; they
// are reported once per pass as a data-quality warning.
func (s *boardService) Board(ctx context.Context, view domain.ViewState, vp grid.Viewport) (*grid.Snapshot, error) {
	rows, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading staff: %w", err)
	}
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}

	warnMissingCatalogRefs(rows, groups)

	snap := grid.Recompute(rows, groups, view, vp)
	return &snap, nil
}

// Relocate validates a move against the full roster and, on acceptance,
// persists the mutated record(s) in one transaction. Both records are
// written or neither is.
func (s *boardService) Relocate(ctx context.Context, req grid.Relocation) (*grid.Result, error) {
	rows, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading staff: %w", err)
	}
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}

	res, err := grid.Validate(req, rows, groups, s.opts)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteStaffRepo(tx)
		now := time.Now().UTC()
		for _, rec := range res.Records() {
			rec.UpdatedAt = now
			if err := txRepo.Update(ctx, &rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("applying relocation: %w", err)
	}
	return res, nil
}

// warnMissingCatalogRefs logs assignments whose course id no longer
// resolves to any group column. They still render from denormalized
// fields; the warning exists so roster data can be repaired.
func warnMissingCatalogRefs(rows []domain.StaffRecord, groups []domain.GroupDefinition) {
	known := make(map[string]bool)
	for _, g := range groups {
		for _, colID := range g.ColumnIDs {
			known[grid.ColumnKey(g.ID, colID)] = true
		}
	}
	for _, r := range rows {
		for _, a := range r.Assignments {
			if !known[grid.ColumnKey(a.GroupID, a.CourseID)] {
				log.Printf("warning: staff %s assignment %s/%s has no catalog entry", r.ID, a.GroupID, a.CourseID)
			}
		}
	}
}
