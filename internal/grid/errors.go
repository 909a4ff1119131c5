package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrNoopMove rejects a relocation whose source and destination are
	// the identical (staff, course) pair.
	ErrNoopMove = errors.New("source and destination are the same cell")

	// ErrCrossGroupMove rejects a relocation whose destination column
	// belongs to a different group than the assignment.
	ErrCrossGroupMove = errors.New("relocation must stay within the same group")

	// ErrOccupiedCell rejects a relocation whose destination staff member
	// already carries an assignment for the destination column. Course ids
	// are unique per staff member; letting a move create a duplicate would
	// make the pair ambiguous for every later move.
	ErrOccupiedCell = errors.New("destination cell is already occupied")

	// ErrCapacityExceeded rejects a relocation that would push the
	// destination over capacity. Only raised when capacity enforcement
	// is switched on; by default over-allocation is allowed and shown
	// visually.
	ErrCapacityExceeded = errors.New("destination staff member is over capacity")

	ErrUnknownStaff      = errors.New("staff member not found")
	ErrUnknownAssignment = errors.New("assignment not found on source staff")
	ErrUnknownColumn     = errors.New("destination column not found")
)

// RelocationError wraps a rejection sentinel with a caller-facing reason.
// Rejections are ordinary return values; they never abort the pipeline.
type RelocationError struct {
	Reason string
	Err    error
}

func (e *RelocationError) Error() string {
	return fmt.Sprintf("relocation rejected: %s", e.Reason)
}

func (e *RelocationError) Unwrap() error { return e.Err }

func rejectf(err error, format string, args ...any) error {
	return &RelocationError{Reason: fmt.Sprintf(format, args...), Err: err}
}
