package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import groups and staff from a roster JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportRoster(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d groups and %d staff members\n",
				result.GroupCount, result.StaffCount)
			return nil
		},
	}
}
