package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/nwaller/loadboard/internal/cli"
	"github.com/nwaller/loadboard/internal/db"
	"github.com/nwaller/loadboard/internal/grid"
	"github.com/nwaller/loadboard/internal/repository"
	"github.com/nwaller/loadboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.loadboard/loadboard.db
	dbPath := os.Getenv("LOADBOARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".loadboard", "loadboard.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	staffRepo := repository.NewSQLiteStaffRepo(database)
	groupRepo := repository.NewSQLiteGroupRepo(database)
	prefRepo := repository.NewSQLitePreferenceRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Capacity enforcement is opt-in; by default over-allocation is
	// allowed and shown in red.
	opts := grid.Options{EnforceCapacity: os.Getenv("LOADBOARD_ENFORCE_CAPACITY") == "1"}

	app := &cli.App{
		Staff:     service.NewStaffService(staffRepo),
		Groups:    service.NewGroupService(groupRepo),
		Board:     service.NewBoardService(staffRepo, groupRepo, uow, opts),
		ViewState: service.NewViewStateService(prefRepo),
		Import:    service.NewImportService(uow),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
