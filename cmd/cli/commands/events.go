package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// DefineEventCmd creates the defineEvent command
func DefineEventCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defineEvent <Race|Event> <YYYY-MM-DD> <name>",
		Short: "Create a race or club event, or edit one with --id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			crews, _ := cmd.Flags().GetString("crews")

			date, err := parseDate(args[1])
			if err != nil {
				return err
			}

			app.Logger.Debug("defineEvent command", zap.String("type", args[0]), zap.String("id", id))

			event, err := services.DefineEvent(app.Ctx, app.Database, app.Logger, services.EventRequest{
				ID:    id,
				Name:  args[2],
				Date:  date,
				Type:  model.EventType(args[0]),
				Crews: model.NewSet(splitList(crews)...),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s saved\n\n", event.Type)
			fmt.Printf("Event ID: %s\n", event.ID)
			fmt.Printf("Name:     %s\n", event.Name)
			fmt.Printf("Date:     %s\n", event.Date.Format("Mon Jan 02 2006"))
			if len(event.Crews) > 0 {
				fmt.Printf("Crews:    %v\n", []string(event.Crews))
			} else {
				fmt.Printf("Crews:    none (only %v can see it)\n", app.Cfg.PrivilegedTags)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("id", "", "Existing event to edit")
	cmd.Flags().String("crews", "", "Comma separated tags that may see the event")

	return cmd
}

// DeleteEventCmd creates the deleteEvent command
func DeleteEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteEvent <event_id>",
		Short: "Delete a race or event and clear it from the calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteEvent(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Event %s deleted\n\n", args[0])
			return nil
		},
	}
}
