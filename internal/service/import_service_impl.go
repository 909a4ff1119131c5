package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nwaller/loadboard/internal/db"
	"github.com/nwaller/loadboard/internal/importer"
)

// ImportResult summarizes a completed roster import.
type ImportResult struct {
	GroupCount int
	StaffCount int
}

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

// ImportRoster loads, validates, converts and persists a roster file.
// Validation errors are joined into one error so the caller can print
// every problem at once.
func (s *importService) ImportRoster(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadRosterSchema(path)
	if err != nil {
		return nil, err
	}

	if errs := importer.ValidateRosterSchema(schema); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.New("invalid roster file:\n  " + strings.Join(msgs, "\n  "))
	}

	roster := importer.Convert(schema)
	if err := importer.Import(ctx, s.uow, roster); err != nil {
		return nil, fmt.Errorf("importing roster: %w", err)
	}

	return &ImportResult{
		GroupCount: len(roster.Groups),
		StaffCount: len(roster.Staff),
	}, nil
}
