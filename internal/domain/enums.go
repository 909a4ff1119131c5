package domain

// Division is the school section a staff member belongs to.
// Exactly two divisions exist; collapse state is tracked per division.
type Division string

const (
	DivisionMiddle Division = "middle"
	DivisionHigh   Division = "high"
)

// ValidDivisions is the canonical set of accepted division strings.
var ValidDivisions = map[string]bool{
	"middle": true, "high": true,
}

type SortDirection string

const (
	SortNone SortDirection = "none"
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)
