package domain

// ViewState is the ephemeral board presentation state: collapse sets,
// the active sort column, and the remaining-capacity alert threshold.
// It is threaded explicitly through every engine call and round-tripped
// through the preference store as opaque JSON; there is no process-wide
// mutable view state.
type ViewState struct {
	CollapsedGroups    map[string]bool   `json:"collapsed_groups"`
	CollapsedDivisions map[Division]bool `json:"collapsed_divisions"`
	SortColumn         string            `json:"sort_column"`
	SortDirection      SortDirection     `json:"sort_direction"`
	AlertThreshold     int               `json:"alert_threshold"`
}

// NewViewState returns an empty view state with allocated collapse sets.
func NewViewState() ViewState {
	return ViewState{
		CollapsedGroups:    make(map[string]bool),
		CollapsedDivisions: make(map[Division]bool),
		SortDirection:      SortNone,
	}
}

// ToggleGroup flips the collapse state of a group.
func (v *ViewState) ToggleGroup(groupID string) {
	if v.CollapsedGroups == nil {
		v.CollapsedGroups = make(map[string]bool)
	}
	v.CollapsedGroups[groupID] = !v.CollapsedGroups[groupID]
}

// ToggleDivision flips the collapse state of a division.
func (v *ViewState) ToggleDivision(d Division) {
	if v.CollapsedDivisions == nil {
		v.CollapsedDivisions = make(map[Division]bool)
	}
	v.CollapsedDivisions[d] = !v.CollapsedDivisions[d]
}
