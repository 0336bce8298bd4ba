package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// ListBoatsCmd creates the listBoats command
func ListBoatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listBoats <member_id>",
		Short: "List the boats a member may see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boats, err := services.ListBoats(app.Ctx, app.Database, app.Logger, app.CalendarFilter(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d boats:\n\n", len(boats))
			for _, b := range boats {
				state := ""
				if !b.Active {
					state = " (inactive)"
				}
				fmt.Printf("- %s [%s]%s\n", b.Name, crewTypeLabel(b.CrewType), state)
				for _, seat := range model.Seats {
					if id, ok := b.Seats[seat]; ok {
						fmt.Printf("    %-7s %s\n", seat, id)
					}
				}
			}
			fmt.Println()
			return nil
		},
	}
}
