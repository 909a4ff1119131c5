package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwaller/loadboard/internal/db"
	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
	"github.com/nwaller/loadboard/internal/repository"
)

// Roster holds the converted domain records ready for persistence.
type Roster struct {
	Groups []*domain.GroupDefinition
	Staff  []*domain.StaffRecord
}

// Convert transforms a validated RosterSchema into domain records.
// Call ValidateRosterSchema first; Convert assumes the schema is valid.
func Convert(schema *RosterSchema) *Roster {
	now := time.Now().UTC()

	groups := make([]*domain.GroupDefinition, 0, len(schema.Groups))
	for _, g := range schema.Groups {
		label := g.Label
		if label == "" {
			label = g.ID
		}

		var stats map[string]domain.ColumnStat
		if len(g.Stats) > 0 {
			stats = make(map[string]domain.ColumnStat, len(g.Stats))
			for colID, st := range g.Stats {
				stats[colID] = domain.ColumnStat{
					Sections:           st.Sections,
					PeriodsPerCycle:    st.PeriodsPerCycle,
					RemainingPeriod:    st.RemainingPeriod,
					StudentsPerSection: st.StudentsPerSection,
				}
			}
		}

		groups = append(groups, &domain.GroupDefinition{
			ID:           g.ID,
			Label:        label,
			Color:        g.Color,
			DisplayOrder: g.DisplayOrder,
			ColumnIDs:    g.Columns,
			Stats:        stats,
			Protected:    g.Protected,
			Other:        g.Other,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	staff := make([]*domain.StaffRecord, 0, len(schema.Staff))
	for _, s := range schema.Staff {
		assignments := make([]domain.AssignmentRecord, 0, len(s.Assignments))
		for _, a := range s.Assignments {
			name := a.CourseName
			if name == "" {
				name = grid.ParseColumnLabel(a.CourseID, a.GroupID)
			}
			assignments = append(assignments, domain.AssignmentRecord{
				CourseID:         a.CourseID,
				CourseName:       name,
				GroupID:          a.GroupID,
				Load:             a.Load,
				ExcludedFromLoad: a.ExcludedFromLoad,
				StudentCount:     a.StudentCount,
			})
		}

		staff = append(staff, &domain.StaffRecord{
			ID:          uuid.New().String(),
			Name:        s.Name,
			Division:    domain.Division(s.Division),
			Role:        s.Role,
			Capacity:    s.Capacity,
			Assignments: assignments,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return &Roster{Groups: groups, Staff: staff}
}

// Import persists a converted roster in one transaction. Everything is
// written or nothing is.
func Import(ctx context.Context, uow db.UnitOfWork, roster *Roster) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		groupRepo := repository.NewSQLiteGroupRepo(tx)
		staffRepo := repository.NewSQLiteStaffRepo(tx)

		for _, g := range roster.Groups {
			if err := groupRepo.Create(ctx, g); err != nil {
				return fmt.Errorf("importing group %q: %w", g.ID, err)
			}
		}
		for _, s := range roster.Staff {
			if err := staffRepo.Create(ctx, s); err != nil {
				return fmt.Errorf("importing staff %q: %w", s.Name, err)
			}
		}
		return nil
	})
}
