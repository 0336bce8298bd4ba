package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/membership"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// SetBoatCmd creates the setBoat command
func SetBoatCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setBoat <name> [seat=member_id ...]",
		Short: "Create a boat or replace its permanent crew",
		Long: `Create a boat or replace its permanent crew.

Seats are cox, stroke, seven, six, five, four, three, two and bow. Seats left out
are empty. Members leaving the boat lose it from their boats and new members gain it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, _ := cmd.Flags().GetString("shell")
			tags, _ := cmd.Flags().GetString("tags")

			seats, err := parseSeats(args[1:])
			if err != nil {
				return err
			}

			app.Logger.Debug("setBoat command", zap.String("boat", args[0]), zap.Int("seats", len(seats)))

			result, err := services.SetBoat(app.Ctx, app.Database, app.Logger, services.BoatUpdate{
				Name:  args[0],
				Seats: seats,
				Shell: shell,
				Tags:  model.NewSet(splitList(tags)...),
			})
			if err != nil {
				return err
			}

			verb := "updated"
			if result.Created {
				verb = "created"
			}
			fmt.Printf("\n✓ Boat %s %s (%s)\n\n", result.Boat.Name, verb, crewTypeLabel(result.Boat.CrewType))

			for _, seat := range model.Seats {
				if id, ok := result.Boat.Seats[seat]; ok {
					fmt.Printf("  %-7s %s\n", seat, id)
				}
			}
			printMutations(result.Mutations)

			return nil
		},
	}

	cmd.Flags().String("shell", "", "Default shell used by the boat's outings")
	cmd.Flags().String("tags", "", "Comma separated tags that may see the boat")

	return cmd
}

// SetBoatActiveCmd creates the setBoatActive command
func SetBoatActiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setBoatActive <name> <true|false>",
		Short: "Mark a boat active or inactive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var active bool
			switch args[1] {
			case "true", "yes", "on":
				active = true
			case "false", "no", "off":
				active = false
			default:
				return fmt.Errorf("active must be true or false, got: %s", args[1])
			}

			boat, err := services.SetBoatActive(app.Ctx, app.Database, app.Logger, args[0], active)
			if err != nil {
				return err
			}

			state := "inactive"
			if boat.Active {
				state = "active"
			}
			fmt.Printf("\n✓ Boat %s is %s\n\n", boat.Name, state)
			return nil
		},
	}
}

// RepairMembershipsCmd creates the repairMemberships command
func RepairMembershipsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "repairMemberships",
		Short: "Rebuild every member's boats from the boats' seats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mutations, err := services.RepairMemberships(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(mutations) == 0 {
				fmt.Println("\n✓ Boat memberships already consistent")
				return nil
			}
			fmt.Printf("\n✓ Repaired %d boat memberships\n", len(mutations))
			printMutations(mutations)
			return nil
		},
	}
}

func printMutations(mutations []membership.Mutation) {
	if len(mutations) == 0 {
		fmt.Println()
		return
	}
	fmt.Printf("\nMembership changes:\n")
	for _, m := range mutations {
		sign := "+"
		if m.Op == membership.OpRemove {
			sign = "-"
		}
		fmt.Printf("  %s %s %s\n", sign, m.MemberID, m.Boat)
	}
	fmt.Println()
}

func crewTypeLabel(t model.CrewType) string {
	if t == model.CrewTypeNone {
		return "empty"
	}
	return string(t)
}
