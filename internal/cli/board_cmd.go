package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nwaller/loadboard/internal/cli/formatter"
	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
)

func newBoardCmd(app *App) *cobra.Command {
	var static bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive assignment board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			view, err := app.ViewState.Load(ctx)
			if err != nil {
				return err
			}

			interactive := app.IsInteractive != nil && app.IsInteractive()
			if static || !interactive {
				return printStaticBoard(ctx, app, view)
			}

			model := newBoardModel(app, view)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "Print the board once instead of opening the TUI")

	return cmd
}

// printStaticBoard renders one snapshot as plain table output. The
// viewport is unbounded so every row materializes.
func printStaticBoard(ctx context.Context, app *App, view domain.ViewState) error {
	threshold := view.AlertThreshold
	if threshold == 0 {
		threshold = 2
	}

	vp := grid.Viewport{ScrollOffset: 0, Size: 1 << 20, ItemSize: 1}
	snap, err := app.Board.Board(ctx, view, vp)
	if err != nil {
		return err
	}

	if len(snap.SortedRows) == 0 {
		fmt.Println("No staff found. Add some with `loadboard staff add` or `loadboard import`.")
		return nil
	}

	fmt.Printf("%s\n", formatter.FormatBoard(snap, threshold))
	return nil
}
