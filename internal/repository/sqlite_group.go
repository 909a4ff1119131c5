package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nwaller/loadboard/internal/db"
	"github.com/nwaller/loadboard/internal/domain"
)

const groupColumns = `id, label, color, display_order, protected, other_group, created_at, updated_at`

// SQLiteGroupRepo implements GroupRepo using a SQLite database.
type SQLiteGroupRepo struct {
	db db.DBTX
}

// NewSQLiteGroupRepo creates a new SQLiteGroupRepo.
func NewSQLiteGroupRepo(conn db.DBTX) *SQLiteGroupRepo {
	return &SQLiteGroupRepo{db: conn}
}

func (r *SQLiteGroupRepo) Create(ctx context.Context, g *domain.GroupDefinition) error {
	query := `INSERT INTO course_groups (id, label, color, display_order, protected, other_group, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.Label,
		g.Color,
		g.DisplayOrder,
		boolToInt(g.Protected),
		boolToInt(g.Other),
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting group: %w", err)
	}
	return r.insertColumns(ctx, g)
}

func (r *SQLiteGroupRepo) GetByID(ctx context.Context, id string) (*domain.GroupDefinition, error) {
	query := `SELECT ` + groupColumns + ` FROM course_groups WHERE id = ?`
	g, err := r.scanGroup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadColumns(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// List returns all groups in display order with their columns resolved.
func (r *SQLiteGroupRepo) List(ctx context.Context) ([]domain.GroupDefinition, error) {
	query := `SELECT ` + groupColumns + ` FROM course_groups ORDER BY display_order, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var out []domain.GroupDefinition
	for rows.Next() {
		g, err := r.scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}

	for i := range out {
		if err := r.loadColumns(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteGroupRepo) Update(ctx context.Context, g *domain.GroupDefinition) error {
	query := `UPDATE course_groups SET label = ?, color = ?, display_order = ?, protected = ?, other_group = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.Label,
		g.Color,
		g.DisplayOrder,
		boolToInt(g.Protected),
		boolToInt(g.Other),
		g.UpdatedAt.Format(time.RFC3339),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group %s: %w", g.ID, ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM group_columns WHERE group_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clearing group columns: %w", err)
	}
	return r.insertColumns(ctx, g)
}

// Delete removes a group and its columns. Protected groups are refused.
func (r *SQLiteGroupRepo) Delete(ctx context.Context, id string) error {
	g, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g.Protected {
		return fmt.Errorf("group %s: %w", id, ErrProtectedGroup)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

func (r *SQLiteGroupRepo) insertColumns(ctx context.Context, g *domain.GroupDefinition) error {
	query := `INSERT INTO group_columns
		(group_id, position, column_id, sections, periods_per_cycle, remaining_period, students_per_section)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, colID := range g.ColumnIDs {
		var sections, periods, remaining, students interface{}
		if st, ok := g.StatFor(colID); ok {
			sections, periods, remaining, students = st.Sections, st.PeriodsPerCycle, st.RemainingPeriod, st.StudentsPerSection
		}
		if _, err := r.db.ExecContext(ctx, query, g.ID, i, colID, sections, periods, remaining, students); err != nil {
			return fmt.Errorf("inserting column %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteGroupRepo) loadColumns(ctx context.Context, g *domain.GroupDefinition) error {
	query := `SELECT column_id, sections, periods_per_cycle, remaining_period, students_per_section
		FROM group_columns WHERE group_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, g.ID)
	if err != nil {
		return fmt.Errorf("loading group columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var colID string
		var sections, periods, remaining, students sql.NullInt64
		if err := rows.Scan(&colID, &sections, &periods, &remaining, &students); err != nil {
			return fmt.Errorf("scanning group column: %w", err)
		}
		g.ColumnIDs = append(g.ColumnIDs, colID)
		if sections.Valid || periods.Valid || remaining.Valid || students.Valid {
			if g.Stats == nil {
				g.Stats = make(map[string]domain.ColumnStat)
			}
			g.Stats[colID] = domain.ColumnStat{
				Sections:           int(sections.Int64),
				PeriodsPerCycle:    int(periods.Int64),
				RemainingPeriod:    int(remaining.Int64),
				StudentsPerSection: int(students.Int64),
			}
		}
	}
	return rows.Err()
}

func (r *SQLiteGroupRepo) scanGroup(row scanner) (*domain.GroupDefinition, error) {
	var g domain.GroupDefinition
	var protected, other int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&g.ID, &g.Label, &g.Color, &g.DisplayOrder, &protected, &other, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("group: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning group: %w", err)
	}

	g.Protected = intToBool(protected)
	g.Other = intToBool(other)
	g.CreatedAt = parseTime(createdAtStr)
	g.UpdatedAt = parseTime(updatedAtStr)
	return &g, nil
}
