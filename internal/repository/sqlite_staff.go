package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nwaller/loadboard/internal/db"
	"github.com/nwaller/loadboard/internal/domain"
)

// staffColumns is the canonical SELECT column list for staff.
const staffColumns = `id, name, division, role, capacity, created_at, updated_at`

// SQLiteStaffRepo implements StaffRepo using a SQLite database. It is
// constructed over db.DBTX so relocation write-back can run a tx-scoped
// instance inside a unit of work.
type SQLiteStaffRepo struct {
	db db.DBTX
}

// NewSQLiteStaffRepo creates a new SQLiteStaffRepo.
func NewSQLiteStaffRepo(conn db.DBTX) *SQLiteStaffRepo {
	return &SQLiteStaffRepo{db: conn}
}

func (r *SQLiteStaffRepo) Create(ctx context.Context, s *domain.StaffRecord) error {
	query := `INSERT INTO staff (id, name, division, role, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.Division),
		s.Role,
		s.Capacity,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting staff: %w", err)
	}
	if err := r.insertAssignments(ctx, s.ID, s.Assignments); err != nil {
		return err
	}
	return nil
}

func (r *SQLiteStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := r.scanStaff(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadAssignments(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStaffRepo) List(ctx context.Context) ([]domain.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	defer rows.Close()

	var out []domain.StaffRecord
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff: %w", err)
	}

	for i := range out {
		if err := r.loadAssignments(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteStaffRepo) Update(ctx context.Context, s *domain.StaffRecord) error {
	query := `UPDATE staff SET name = ?, division = ?, role = ?, capacity = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		string(s.Division),
		s.Role,
		s.Capacity,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating staff: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("staff %s: %w", s.ID, ErrNotFound)
	}
	if err := r.replaceAssignmentRows(ctx, s.ID, s.Assignments); err != nil {
		return err
	}
	return nil
}

func (r *SQLiteStaffRepo) ReplaceAssignments(ctx context.Context, staffID string, assignments []domain.AssignmentRecord) (*domain.StaffRecord, error) {
	if err := r.replaceAssignmentRows(ctx, staffID, assignments); err != nil {
		return nil, err
	}
	if err := r.touch(ctx, staffID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, staffID)
}

func (r *SQLiteStaffRepo) SetCapacity(ctx context.Context, staffID string, capacity int) (*domain.StaffRecord, error) {
	query := `UPDATE staff SET capacity = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, capacity, time.Now().UTC().Format(time.RFC3339), staffID)
	if err != nil {
		return nil, fmt.Errorf("setting capacity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("staff %s: %w", staffID, ErrNotFound)
	}
	return r.GetByID(ctx, staffID)
}

func (r *SQLiteStaffRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting staff: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStaffRepo) touch(ctx context.Context, staffID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE staff SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), staffID)
	if err != nil {
		return fmt.Errorf("touching staff: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("staff %s: %w", staffID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStaffRepo) replaceAssignmentRows(ctx context.Context, staffID string, assignments []domain.AssignmentRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE staff_id = ?`, staffID); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}
	return r.insertAssignments(ctx, staffID, assignments)
}

func (r *SQLiteStaffRepo) insertAssignments(ctx context.Context, staffID string, assignments []domain.AssignmentRecord) error {
	query := `INSERT INTO assignments
		(staff_id, position, course_id, course_name, group_id, load, excluded_from_load, student_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, a := range assignments {
		_, err := r.db.ExecContext(ctx, query,
			staffID,
			i,
			a.CourseID,
			a.CourseName,
			a.GroupID,
			a.Load,
			boolToInt(a.ExcludedFromLoad),
			nullableIntToValue(a.StudentCount),
		)
		if err != nil {
			return fmt.Errorf("inserting assignment %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteStaffRepo) loadAssignments(ctx context.Context, s *domain.StaffRecord) error {
	query := `SELECT course_id, course_name, group_id, load, excluded_from_load, student_count
		FROM assignments WHERE staff_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, s.ID)
	if err != nil {
		return fmt.Errorf("loading assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.AssignmentRecord
		var excluded int
		var students sql.NullInt64
		if err := rows.Scan(&a.CourseID, &a.CourseName, &a.GroupID, &a.Load, &excluded, &students); err != nil {
			return fmt.Errorf("scanning assignment: %w", err)
		}
		a.ExcludedFromLoad = intToBool(excluded)
		a.StudentCount = nullIntToPtr(students)
		s.Assignments = append(s.Assignments, a)
	}
	return rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteStaffRepo) scanStaff(row scanner) (*domain.StaffRecord, error) {
	var s domain.StaffRecord
	var divisionStr, createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.Name, &divisionStr, &s.Role, &s.Capacity, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("staff: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning staff: %w", err)
	}

	s.Division = domain.Division(divisionStr)
	s.CreatedAt = parseTime(createdAtStr)
	s.UpdatedAt = parseTime(updatedAtStr)
	return &s, nil
}
