package grid

import (
	"math/rand"
	"testing"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsCrossGroupMove(t *testing.T) {
	rows := makeRows()

	_, err := Validate(Relocation{
		SourceStaffID: "s1",
		CourseID:      "CCW6_A", // lives in group CCW6
		DestStaffID:   "s2",
		DestGroupID:   "CCW7",
		DestColumnID:  "CCW7_A",
	}, rows, makeGroups(), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCrossGroupMove)

	var relErr *RelocationError
	require.ErrorAs(t, err, &relErr)
	assert.NotEmpty(t, relErr.Reason)
}

func TestValidate_RejectsNoopMove(t *testing.T) {
	rows := makeRows()

	_, err := Validate(Relocation{
		SourceStaffID: "s1",
		CourseID:      "CCW6_A",
		DestStaffID:   "s1",
		DestGroupID:   "CCW6",
		DestColumnID:  "CCW6_A",
	}, rows, makeGroups(), Options{})

	assert.ErrorIs(t, err, ErrNoopMove)
}

func TestValidate_RejectsUnknownEntities(t *testing.T) {
	rows := makeRows()
	groups := makeGroups()

	_, err := Validate(Relocation{SourceStaffID: "nope", CourseID: "CCW6_A",
		DestStaffID: "s2", DestGroupID: "CCW6", DestColumnID: "CCW6_B"}, rows, groups, Options{})
	assert.ErrorIs(t, err, ErrUnknownStaff)

	_, err = Validate(Relocation{SourceStaffID: "s1", CourseID: "CCW9_Z",
		DestStaffID: "s2", DestGroupID: "CCW6", DestColumnID: "CCW6_B"}, rows, groups, Options{})
	assert.ErrorIs(t, err, ErrUnknownAssignment)

	_, err = Validate(Relocation{SourceStaffID: "s1", CourseID: "CCW6_A",
		DestStaffID: "s2", DestGroupID: "CCW6", DestColumnID: "CCW6_Z"}, rows, groups, Options{})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestValidate_CrossStaffMove(t *testing.T) {
	// A carries one CCW6 assignment, B carries none.
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 6)),
		makeStaff("b", "B", domain.DivisionMiddle, 20),
	}
	groups := makeGroups()
	cols := VisibleColumns(groups, nil)

	before := Aggregate(rows, cols)

	res, err := Validate(Relocation{
		SourceStaffID: "a",
		CourseID:      "CCW6_A",
		DestStaffID:   "b",
		DestGroupID:   "CCW6",
		DestColumnID:  "CCW6_A",
	}, rows, groups, Options{})
	require.NoError(t, err)
	require.NotNil(t, res.Dest)

	assert.Len(t, res.Source.Assignments, 0)
	assert.Len(t, res.Dest.Assignments, 1)

	// Inputs are snapshots: the original rows must be untouched.
	assert.Len(t, rows[0].Assignments, 1)
	assert.Len(t, rows[1].Assignments, 0)

	// Load is redistributed, not created or destroyed.
	after := Aggregate([]domain.StaffRecord{res.Source, *res.Dest}, cols)
	assert.Equal(t, before.Columns["CCW6:CCW6_A"].LoadSum, after.Columns["CCW6:CCW6_A"].LoadSum)
	assert.Equal(t, before.Grand.ConsumedSum, after.Grand.ConsumedSum)
}

func TestValidate_SameStaffColumnChange(t *testing.T) {
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 6)),
	}

	res, err := Validate(Relocation{
		SourceStaffID: "a",
		CourseID:      "CCW6_A",
		DestStaffID:   "a",
		DestGroupID:   "CCW6",
		DestColumnID:  "CCW6_CCW_E_6",
	}, rows, makeGroups(), Options{})
	require.NoError(t, err)
	assert.Nil(t, res.Dest, "same-staff move mutates one record")

	require.Len(t, res.Source.Assignments, 1)
	moved := res.Source.Assignments[0]
	assert.Equal(t, "CCW6_CCW_E_6", moved.CourseID)
	assert.Equal(t, "CCW(E)6", moved.CourseName)
	assert.Equal(t, "CCW6", moved.GroupID)

	// Label rewrite is load-invariant.
	assert.Equal(t, rows[0].ConsumedLoad(), res.Source.ConsumedLoad())
}

func TestValidate_RejectsOccupiedCell(t *testing.T) {
	// B already carries the destination course; accepting would leave B
	// with two CCW6_A entries and make the pair ambiguous.
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 6)),
		makeStaff("b", "B", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 3)),
	}
	groups := makeGroups()

	_, err := Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "b", DestGroupID: "CCW6", DestColumnID: "CCW6_A",
	}, rows, groups, Options{})
	assert.ErrorIs(t, err, ErrOccupiedCell)

	// Same-staff column change onto a column the member already holds.
	rows = []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20,
			makeAssignment("CCW6", "CCW6_A", 6),
			makeAssignment("CCW6", "CCW6_B", 2)),
	}
	_, err = Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "a", DestGroupID: "CCW6", DestColumnID: "CCW6_B",
	}, rows, groups, Options{})
	assert.ErrorIs(t, err, ErrOccupiedCell)
}

// TestValidate_SequentialMovesConserveLoad replays the sequence that used
// to destroy load: landing on an occupied cell and then moving the same
// course id again. The occupied landing is now rejected; the legal detour
// keeps every unit of load accounted for at each step.
func TestValidate_SequentialMovesConserveLoad(t *testing.T) {
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 6)),
		makeStaff("b", "B", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 3)),
	}
	groups := makeGroups()
	require.Equal(t, 9, totalLoad(rows))

	_, err := Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "b", DestGroupID: "CCW6", DestColumnID: "CCW6_A",
	}, rows, groups, Options{})
	require.ErrorIs(t, err, ErrOccupiedCell)
	assert.Equal(t, 9, totalLoad(rows), "rejection leaves state untouched")

	// Legal landing: B's free CCW6_B column.
	res, err := Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "b", DestGroupID: "CCW6", DestColumnID: "CCW6_B",
	}, rows, groups, Options{})
	require.NoError(t, err)
	rows = applyResult(rows, res)
	require.Equal(t, 9, totalLoad(rows))

	// Moving B's original CCW6_A back to A takes exactly one entry along.
	res, err = Validate(Relocation{
		SourceStaffID: "b", CourseID: "CCW6_A",
		DestStaffID: "a", DestGroupID: "CCW6", DestColumnID: "CCW6_A",
	}, rows, groups, Options{})
	require.NoError(t, err)
	rows = applyResult(rows, res)

	assert.Equal(t, 9, totalLoad(rows))
	assert.Len(t, rows[0].Assignments, 1)
	assert.Len(t, rows[1].Assignments, 1)
	assert.Equal(t, 3, rows[0].Assignments[0].Load)
	assert.Equal(t, 6, rows[1].Assignments[0].Load)
}

func TestValidate_CapacityNotEnforcedByDefault(t *testing.T) {
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 6)),
		makeStaff("b", "B", domain.DivisionMiddle, 2), // already too small
	}

	res, err := Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "b", DestGroupID: "CCW6", DestColumnID: "CCW6_A",
	}, rows, makeGroups(), Options{})
	require.NoError(t, err, "over-capacity moves are allowed by default")
	assert.Equal(t, -4, res.Dest.RemainingCapacity())
}

func TestValidate_CapacityEnforcementFlag(t *testing.T) {
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, makeAssignment("CCW6", "CCW6_A", 6)),
		makeStaff("b", "B", domain.DivisionMiddle, 2),
	}

	_, err := Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "b", DestGroupID: "CCW6", DestColumnID: "CCW6_A",
	}, rows, makeGroups(), Options{EnforceCapacity: true})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestValidate_CapacityFlagIgnoresExcludedLoad(t *testing.T) {
	planning := domain.AssignmentRecord{
		CourseID: "CCW6_A", GroupID: "CCW6", Load: 6, ExcludedFromLoad: true,
	}
	rows := []domain.StaffRecord{
		makeStaff("a", "A", domain.DivisionMiddle, 20, planning),
		makeStaff("b", "B", domain.DivisionMiddle, 0),
	}

	res, err := Validate(Relocation{
		SourceStaffID: "a", CourseID: "CCW6_A",
		DestStaffID: "b", DestGroupID: "CCW6", DestColumnID: "CCW6_B",
	}, rows, makeGroups(), Options{EnforceCapacity: true})
	require.NoError(t, err, "excluded assignments never trip the capacity rule")
	assert.True(t, res.Dest.Assignments[0].ExcludedFromLoad, "exclusion flag carried through")
}

// TestValidate_Invariant_LoadConserved property-tests the core invariant:
// total load summed over all rows is conserved across any accepted
// single-move relocation.
func TestValidate_Invariant_LoadConserved(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	groups := makeGroups()
	cols := VisibleColumns(groups, nil)

	columnsByGroup := map[string][]string{}
	for _, c := range cols {
		columnsByGroup[c.GroupID] = append(columnsByGroup[c.GroupID], c.ColumnID)
	}

	for trial := 0; trial < 200; trial++ {
		// Random roster with random assignments over the catalog.
		numStaff := rng.Intn(6) + 2
		rows := make([]domain.StaffRecord, numStaff)
		for i := range rows {
			rows[i] = makeStaff(
				string(rune('a'+i)), "Staff", domain.DivisionMiddle, rng.Intn(25),
			)
			for _, c := range cols {
				if rng.Intn(3) == 0 {
					a := makeAssignment(c.GroupID, c.ColumnID, rng.Intn(8))
					if rng.Intn(5) == 0 {
						a.ExcludedFromLoad = true
					}
					rows[i].Assignments = append(rows[i].Assignments, a)
				}
			}
		}

		// Random relocation request over existing assignments.
		src := rows[rng.Intn(numStaff)]
		if len(src.Assignments) == 0 {
			continue
		}
		moved := src.Assignments[rng.Intn(len(src.Assignments))]
		destStaff := rows[rng.Intn(numStaff)]
		destCols := columnsByGroup[moved.GroupID]
		destCol := destCols[rng.Intn(len(destCols))]

		res, err := Validate(Relocation{
			SourceStaffID: src.ID,
			CourseID:      moved.CourseID,
			DestStaffID:   destStaff.ID,
			DestGroupID:   moved.GroupID,
			DestColumnID:  destCol,
		}, rows, groups, Options{})
		if err != nil {
			continue // rejected moves leave state untouched by construction
		}

		updated := applyResult(rows, res)

		before := Aggregate(rows, cols)
		after := Aggregate(updated, cols)
		assert.Equal(t, before.Grand.ConsumedSum, after.Grand.ConsumedSum,
			"trial %d: consumed load must be conserved", trial)
		assert.Equal(t, totalLoad(rows), totalLoad(updated),
			"trial %d: raw load must be conserved", trial)
	}
}

func applyResult(rows []domain.StaffRecord, res *Result) []domain.StaffRecord {
	out := make([]domain.StaffRecord, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].ID == res.Source.ID {
			out[i] = res.Source
		}
		if res.Dest != nil && out[i].ID == res.Dest.ID {
			out[i] = *res.Dest
		}
	}
	return out
}

func totalLoad(rows []domain.StaffRecord) int {
	total := 0
	for _, r := range rows {
		for _, a := range r.Assignments {
			total += a.Load
		}
	}
	return total
}
