package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/repository"
	"github.com/nwaller/loadboard/internal/testutil"
)

func TestConvert_Groups(t *testing.T) {
	schema := &RosterSchema{
		Groups: []GroupImport{
			{
				ID: "CCW6", Label: "CCW Year 6", Color: "green", DisplayOrder: 2,
				Columns: []string{"CCW6_A", "CCW6_B"},
				Stats: map[string]StatImport{
					"CCW6_A": {Sections: 2, PeriodsPerCycle: 12},
				},
				Protected: true,
			},
			{ID: "CCW7", DisplayOrder: 1, Columns: []string{"CCW7_A"}},
		},
	}

	roster := Convert(schema)
	require.Len(t, roster.Groups, 2)

	g := roster.Groups[0]
	assert.Equal(t, "CCW6", g.ID)
	assert.Equal(t, "CCW Year 6", g.Label)
	assert.Equal(t, "green", g.Color)
	assert.Equal(t, 2, g.DisplayOrder)
	assert.Equal(t, []string{"CCW6_A", "CCW6_B"}, g.ColumnIDs)
	assert.True(t, g.Protected)
	assert.False(t, g.CreatedAt.IsZero())

	stat, ok := g.StatFor("CCW6_A")
	require.True(t, ok)
	assert.Equal(t, 2, stat.Sections)
	assert.Equal(t, 12, stat.PeriodsPerCycle)

	// Label defaults to the id.
	assert.Equal(t, "CCW7", roster.Groups[1].Label)
}

func TestConvert_Staff(t *testing.T) {
	schema := &RosterSchema{
		Staff: []StaffImport{
			{
				Name: "Amara", Division: "middle", Role: "teacher", Capacity: 20,
				Assignments: []AssignmentImport{
					{GroupID: "CCW6", CourseID: "CCW6_A", CourseName: "Algebra", Load: 6, StudentCount: ptrInt(24)},
					{GroupID: "CCW6", CourseID: "CCW6_CCW_E_6", Load: 3},
				},
			},
		},
	}

	roster := Convert(schema)
	require.Len(t, roster.Staff, 1)

	s := roster.Staff[0]
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Amara", s.Name)
	assert.Equal(t, domain.DivisionMiddle, s.Division)
	assert.Equal(t, 20, s.Capacity)
	require.Len(t, s.Assignments, 2)

	assert.Equal(t, "Algebra", s.Assignments[0].CourseName)
	require.NotNil(t, s.Assignments[0].StudentCount)
	assert.Equal(t, 24, *s.Assignments[0].StudentCount)

	// Missing course_name falls back to the derived column label.
	assert.Equal(t, "CCW(E)6", s.Assignments[1].CourseName)
}

func TestConvert_DistinctStaffIDs(t *testing.T) {
	schema := &RosterSchema{
		Staff: []StaffImport{
			{Name: "A", Division: "middle", Capacity: 10},
			{Name: "B", Division: "high", Capacity: 10},
		},
	}
	roster := Convert(schema)
	require.Len(t, roster.Staff, 2)
	assert.NotEqual(t, roster.Staff[0].ID, roster.Staff[1].ID)
}

func TestImport_Persists(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	schema := &RosterSchema{
		Groups: []GroupImport{
			{ID: "CCW6", DisplayOrder: 1, Columns: []string{"CCW6_A"}},
		},
		Staff: []StaffImport{
			{
				Name: "Amara", Division: "middle", Capacity: 20,
				Assignments: []AssignmentImport{
					{GroupID: "CCW6", CourseID: "CCW6_A", Load: 6},
				},
			},
		},
	}
	require.Empty(t, ValidateRosterSchema(schema))

	roster := Convert(schema)
	require.NoError(t, Import(ctx, testutil.NewTestUoW(database), roster))

	groups, err := repository.NewSQLiteGroupRepo(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	staff, err := repository.NewSQLiteStaffRepo(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	require.Len(t, staff[0].Assignments, 1)
	assert.Equal(t, 6, staff[0].Assignments[0].Load)
}

func TestImport_RollsBackOnConflict(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	// Pre-existing group id collides with the import.
	require.NoError(t, repository.NewSQLiteGroupRepo(database).Create(ctx,
		testutil.NewTestGroup("CCW6", testutil.WithColumns("CCW6_A"))))

	roster := Convert(&RosterSchema{
		Groups: []GroupImport{
			{ID: "FRESH", DisplayOrder: 1, Columns: []string{"FRESH_A"}},
			{ID: "CCW6", DisplayOrder: 2, Columns: []string{"CCW6_A"}},
		},
		Staff: []StaffImport{
			{Name: "Amara", Division: "middle", Capacity: 20},
		},
	})

	err := Import(ctx, testutil.NewTestUoW(database), roster)
	require.Error(t, err)

	// Nothing from the failed import survives, including the fresh group.
	_, err = repository.NewSQLiteGroupRepo(database).GetByID(ctx, "FRESH")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	staff, err := repository.NewSQLiteStaffRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff)
}
