package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nwaller/loadboard/internal/cli/formatter"
	"github.com/nwaller/loadboard/internal/domain"
)

// resolveStaffID resolves a name or id (or id prefix) to a staff id.
func resolveStaffID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("staff name or ID is required")
	}

	staff, err := app.Staff.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, s := range staff {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}

	// 2. Exact ID match
	for _, s := range staff {
		if s.ID == input {
			return s.ID, nil
		}
	}

	// 3. ID prefix match
	var matches []string
	for _, s := range staff {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("staff member not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("staff ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newStaffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff members",
	}

	cmd.AddCommand(
		newStaffAddCmd(app),
		newStaffListCmd(app),
		newStaffInspectCmd(app),
		newStaffSetCapacityCmd(app),
		newStaffRemoveCmd(app),
	)

	return cmd
}

func newStaffAddCmd(app *App) *cobra.Command {
	var name, division, role string
	var capacity int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without --name, fall back to the interactive form.
			if name == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--name is required")
				}
				if err := runStaffForm(&name, &division, &role, &capacity); err != nil {
					return err
				}
			}

			s := &domain.StaffRecord{
				Name:     name,
				Division: domain.Division(division),
				Role:     role,
				Capacity: capacity,
			}
			if err := app.Staff.Create(context.Background(), s); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s, capacity %d)\n", s.Name, s.Division, s.Capacity)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Staff member name")
	cmd.Flags().StringVar(&division, "division", "middle", "Division (middle|high)")
	cmd.Flags().StringVar(&role, "role", "", "Role label")
	cmd.Flags().IntVar(&capacity, "capacity", 20, "Load capacity in periods")

	return cmd
}

func newStaffListCmd(app *App) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staff with load figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := app.Staff.List(context.Background())
			if err != nil {
				return err
			}

			if len(staff) == 0 {
				fmt.Println("No staff found.")
				return nil
			}

			fmt.Printf("%s", formatter.FormatStaffList(staff, threshold))
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 2, "Remaining-capacity alert threshold")

	return cmd
}

func newStaffInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect NAME",
		Short: "Show a staff member's assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveStaffID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Staff.GetByID(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header(s.Name))
			fmt.Printf("%s %s  %s %s  %s %d/%d\n",
				formatter.Dim("division:"), s.Division,
				formatter.Dim("role:"), s.Role,
				formatter.Dim("load:"), s.ConsumedLoad(), s.Capacity)

			if len(s.Assignments) == 0 {
				fmt.Println(formatter.Dim("no assignments"))
				return nil
			}

			headers := []string{"GROUP", "COURSE", "LOAD", "STUDENTS"}
			rows := make([][]string, 0, len(s.Assignments))
			for _, a := range s.Assignments {
				load := fmt.Sprintf("%d", a.Load)
				if a.ExcludedFromLoad {
					load = formatter.Dim(load + " (excluded)")
				}
				students := ""
				if a.StudentCount != nil {
					students = fmt.Sprintf("%d", *a.StudentCount)
				}
				rows = append(rows, []string{a.GroupID, a.CourseName, load, students})
			}
			fmt.Printf("%s", formatter.RenderTable(headers, rows,
				[]int{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight}))
			return nil
		},
	}
}

func newStaffSetCapacityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-capacity NAME CAPACITY",
		Short: "Set a staff member's load capacity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveStaffID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var capacity int
			if _, err := fmt.Sscanf(args[1], "%d", &capacity); err != nil {
				return fmt.Errorf("invalid capacity %q", args[1])
			}

			s, err := app.Staff.SetCapacity(ctx, id, capacity)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s capacity to %d (%d remaining)\n", s.Name, s.Capacity, s.RemainingCapacity())
			return nil
		},
	}
}

func newStaffRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a staff member and their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveStaffID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Staff.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed staff %s\n", args[0])
			return nil
		},
	}
}
