package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
	"github.com/nwaller/loadboard/internal/repository"
	"github.com/nwaller/loadboard/internal/testutil"
)

type boardFixture struct {
	board BoardService
	staff repository.StaffRepo
	ids   map[string]string // name -> staff id
}

func newBoardFixture(t *testing.T, opts grid.Options) *boardFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	staffRepo := repository.NewSQLiteStaffRepo(database)
	groupRepo := repository.NewSQLiteGroupRepo(database)
	ctx := context.Background()

	groups := []*domain.GroupDefinition{
		testutil.NewTestGroup("CCW6",
			testutil.WithDisplayOrder(1),
			testutil.WithColumns("CCW6_A", "CCW6_B")),
		testutil.NewTestGroup("CCW7",
			testutil.WithDisplayOrder(2),
			testutil.WithColumns("CCW7_A", "CCW7_B")),
	}
	for _, g := range groups {
		require.NoError(t, groupRepo.Create(ctx, g))
	}

	roster := []*domain.StaffRecord{
		testutil.NewTestStaff("Amara",
			testutil.WithCapacity(20),
			testutil.WithAssignments(
				testutil.NewTestAssignment("CCW6", "CCW6_A", 6),
				testutil.NewTestAssignment("CCW7", "CCW7_A", 5),
			)),
		testutil.NewTestStaff("Bell",
			testutil.WithDivision(domain.DivisionHigh),
			testutil.WithCapacity(8),
			testutil.WithAssignments(
				testutil.NewTestAssignment("CCW7", "CCW7_B", 4),
			)),
	}
	ids := make(map[string]string, len(roster))
	for _, s := range roster {
		require.NoError(t, staffRepo.Create(ctx, s))
		ids[s.Name] = s.ID
	}

	return &boardFixture{
		board: NewBoardService(staffRepo, groupRepo, testutil.NewTestUoW(database), opts),
		staff: staffRepo,
		ids:   ids,
	}
}

func testViewport() grid.Viewport {
	return grid.Viewport{ScrollOffset: 0, Size: 600, ItemSize: 30, Overscan: 3}
}

func TestBoardService_Board(t *testing.T) {
	f := newBoardFixture(t, grid.Options{})
	ctx := context.Background()

	snap, err := f.board.Board(ctx, domain.NewViewState(), testViewport())
	require.NoError(t, err)

	assert.Len(t, snap.VisibleRows, 2)
	assert.Len(t, snap.VisibleColumns, 4)
	assert.Equal(t, 2, snap.Totals.Grand.RowCount)
	assert.Equal(t, 15, snap.Totals.Grand.ConsumedSum)
	assert.Equal(t, 28, snap.Totals.Grand.CapacitySum)
}

func TestBoardService_Board_CollapsedDivision(t *testing.T) {
	f := newBoardFixture(t, grid.Options{})
	ctx := context.Background()

	view := domain.NewViewState()
	view.ToggleDivision(domain.DivisionHigh)

	snap, err := f.board.Board(ctx, view, testViewport())
	require.NoError(t, err)

	require.Len(t, snap.VisibleRows, 1)
	assert.Equal(t, "Amara", snap.VisibleRows[0].Name)
	assert.Equal(t, 11, snap.Totals.Grand.ConsumedSum)
}

func TestBoardService_Relocate_CrossStaff(t *testing.T) {
	f := newBoardFixture(t, grid.Options{})
	ctx := context.Background()

	before, err := f.board.Board(ctx, domain.NewViewState(), testViewport())
	require.NoError(t, err)

	res, err := f.board.Relocate(ctx, grid.Relocation{
		SourceStaffID: f.ids["Amara"],
		CourseID:      "CCW7_A",
		DestStaffID:   f.ids["Bell"],
		DestGroupID:   "CCW7",
		DestColumnID:  "CCW7_A",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Dest)

	// Writes are persisted, not just returned.
	amara, err := f.staff.GetByID(ctx, f.ids["Amara"])
	require.NoError(t, err)
	bell, err := f.staff.GetByID(ctx, f.ids["Bell"])
	require.NoError(t, err)

	assert.Len(t, amara.Assignments, 1)
	require.Len(t, bell.Assignments, 2)
	assert.Equal(t, "CCW7_A", bell.Assignments[1].CourseID)
	assert.Equal(t, 5, bell.Assignments[1].Load)

	// Board-wide consumed load is conserved across the move.
	after, err := f.board.Board(ctx, domain.NewViewState(), testViewport())
	require.NoError(t, err)
	assert.Equal(t, before.Totals.Grand.ConsumedSum, after.Totals.Grand.ConsumedSum)
}

func TestBoardService_Relocate_RejectionLeavesRosterUntouched(t *testing.T) {
	f := newBoardFixture(t, grid.Options{})
	ctx := context.Background()

	_, err := f.board.Relocate(ctx, grid.Relocation{
		SourceStaffID: f.ids["Amara"],
		CourseID:      "CCW6_A",
		DestStaffID:   f.ids["Bell"],
		DestGroupID:   "CCW7",
		DestColumnID:  "CCW7_B",
	})
	require.ErrorIs(t, err, grid.ErrCrossGroupMove)

	amara, err := f.staff.GetByID(ctx, f.ids["Amara"])
	require.NoError(t, err)
	assert.Len(t, amara.Assignments, 2)
	bell, err := f.staff.GetByID(ctx, f.ids["Bell"])
	require.NoError(t, err)
	assert.Len(t, bell.Assignments, 1)
}

func TestBoardService_Relocate_CapacityEnforced(t *testing.T) {
	f := newBoardFixture(t, grid.Options{EnforceCapacity: true})
	ctx := context.Background()

	// Bell is at 4/8; adding a 5-load assignment would reach 9.
	_, err := f.board.Relocate(ctx, grid.Relocation{
		SourceStaffID: f.ids["Amara"],
		CourseID:      "CCW7_A",
		DestStaffID:   f.ids["Bell"],
		DestGroupID:   "CCW7",
		DestColumnID:  "CCW7_A",
	})
	assert.ErrorIs(t, err, grid.ErrCapacityExceeded)
}

func TestBoardService_Relocate_SameStaffColumnChange(t *testing.T) {
	f := newBoardFixture(t, grid.Options{})
	ctx := context.Background()

	res, err := f.board.Relocate(ctx, grid.Relocation{
		SourceStaffID: f.ids["Amara"],
		CourseID:      "CCW6_A",
		DestStaffID:   f.ids["Amara"],
		DestGroupID:   "CCW6",
		DestColumnID:  "CCW6_B",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Dest)

	amara, err := f.staff.GetByID(ctx, f.ids["Amara"])
	require.NoError(t, err)
	require.Len(t, amara.Assignments, 2)
	assert.Nil(t, amara.AssignmentFor("CCW6_A"))
	moved := amara.AssignmentFor("CCW6_B")
	require.NotNil(t, moved)
	assert.Equal(t, 6, moved.Load)
}
