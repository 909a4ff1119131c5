package cli

import (
	"github.com/spf13/cobra"

	"github.com/nwaller/loadboard/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Staff     service.StaffService
	Groups    service.GroupService
	Board     service.BoardService
	ViewState service.ViewStateService
	Import    service.ImportService

	// IsInteractive reports whether stdin is a terminal; the board
	// command only starts the TUI when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "loadboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "loadboard",
		Short: "Course load assignment board",
	}

	root.AddCommand(
		newBoardCmd(app),
		newStaffCmd(app),
		newGroupCmd(app),
		newImportCmd(app),
	)

	return root
}
