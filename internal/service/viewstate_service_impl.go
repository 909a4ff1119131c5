package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/repository"
)

// viewStateKey is the preference-store key the board view state lives under.
const viewStateKey = "board.view"

type viewStateService struct {
	prefs repository.PreferenceRepo
}

func NewViewStateService(prefs repository.PreferenceRepo) ViewStateService {
	return &viewStateService{prefs: prefs}
}

func (s *viewStateService) Load(ctx context.Context) (domain.ViewState, error) {
	def, err := json.Marshal(domain.NewViewState())
	if err != nil {
		return domain.NewViewState(), fmt.Errorf("encoding default view state: %w", err)
	}

	raw, err := s.prefs.Get(ctx, viewStateKey, def)
	if err != nil {
		return domain.NewViewState(), err
	}

	var view domain.ViewState
	if err := json.Unmarshal(raw, &view); err != nil {
		// A corrupt stored value falls back to defaults rather than
		// blocking board startup.
		return domain.NewViewState(), nil
	}
	if view.CollapsedGroups == nil {
		view.CollapsedGroups = make(map[string]bool)
	}
	if view.CollapsedDivisions == nil {
		view.CollapsedDivisions = make(map[domain.Division]bool)
	}
	if view.SortDirection == "" {
		view.SortDirection = domain.SortNone
	}
	return view, nil
}

func (s *viewStateService) Save(ctx context.Context, view domain.ViewState) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	return s.prefs.Set(ctx, viewStateKey, raw)
}
