package grid

import (
	"strings"

	"github.com/nwaller/loadboard/internal/domain"
)

// otherGroupMarker is appended to display labels of the catch-all group.
const otherGroupMarker = " *"

// ColumnRef is one visible course-slot column with its render-time
// metadata resolved. Key is stable across pipeline runs.
type ColumnRef struct {
	GroupID  string
	ColumnID string
	Key      string
	Label    string
	Color    string
	Stat     *domain.ColumnStat
}

// ColumnKey returns the stable key for a (group, column) pair.
func ColumnKey(groupID, columnID string) string {
	return groupID + ":" + columnID
}

// ParseColumnLabel derives a human display label from a raw column id.
//
// The common case strips the owning group's id prefix and renders the
// remainder: a single token stands alone ("OTHER_SUBJECTS_TOK" in group
// OTHER_SUBJECTS -> "TOK"), two tokens are joined with a space, and three
// or more collapse the middle tokens into parentheses between the first
// and last ("CCW6_CCW_E_6" in group CCW6 -> "CCW(E)6"). Ids without the
// group prefix go through the same token heuristic on the full id. An id
// that yields no tokens at all is returned verbatim rather than failing.
func ParseColumnLabel(columnID, groupID string) string {
	rest := columnID
	if groupID != "" && strings.HasPrefix(columnID, groupID+"_") {
		rest = strings.TrimPrefix(columnID, groupID+"_")
	}

	tokens := splitTokens(rest)
	switch len(tokens) {
	case 0:
		// Malformed id: fall back to the raw id as the label.
		return columnID
	case 1:
		return tokens[0]
	case 2:
		return tokens[0] + " " + tokens[1]
	default:
		middle := strings.Join(tokens[1:len(tokens)-1], "")
		return tokens[0] + "(" + middle + ")" + tokens[len(tokens)-1]
	}
}

func splitTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Split(s, "_") {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
