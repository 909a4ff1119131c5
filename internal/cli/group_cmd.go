package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nwaller/loadboard/internal/cli/formatter"
	"github.com/nwaller/loadboard/internal/domain"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage course groups",
	}

	cmd.AddCommand(
		newGroupAddCmd(app),
		newGroupListCmd(app),
		newGroupRemoveCmd(app),
	)

	return cmd
}

func newGroupAddCmd(app *App) *cobra.Command {
	var label, color string
	var order int
	var columns []string
	var protected, other bool

	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a course group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(columns) == 0 {
				return fmt.Errorf("at least one --column is required")
			}

			g := &domain.GroupDefinition{
				ID:           strings.ToUpper(args[0]),
				Label:        label,
				Color:        color,
				DisplayOrder: order,
				ColumnIDs:    columns,
				Protected:    protected,
				Other:        other,
			}
			if err := app.Groups.Create(context.Background(), g); err != nil {
				return err
			}

			fmt.Printf("Added group %s with %d columns\n", g.ID, len(g.ColumnIDs))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Display label (defaults to the ID)")
	cmd.Flags().StringVar(&color, "color", "blue", "Palette color token")
	cmd.Flags().IntVar(&order, "order", 0, "Display order")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column ID (repeatable)")
	cmd.Flags().BoolVar(&protected, "protected", false, "Protect the group from deletion")
	cmd.Flags().BoolVar(&other, "other", false, "Mark as the catch-all group")

	return cmd
}

func newGroupListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List course groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := app.Groups.List(context.Background())
			if err != nil {
				return err
			}

			if len(groups) == 0 {
				fmt.Println("No groups found.")
				return nil
			}

			fmt.Printf("%s", formatter.FormatGroupList(groups))
			return nil
		},
	}
}

func newGroupRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a course group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.ToUpper(args[0])
			if err := app.Groups.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Removed group %s\n", id)
			return nil
		},
	}
}
