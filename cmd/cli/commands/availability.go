package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// RecordAvailabilityCmd creates the recordAvailability command
func RecordAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordAvailability <member_id> <state> <YYYY-MM-DD> [YYYY-MM-DD ...]",
		Short: "Record a member's availability on one or more dates",
		Long: `Record a member's availability on one or more dates.

State is one of available, if-required, not-available or out-of-cam.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			dates, err := parseDates(args[2:])
			if err != nil {
				return err
			}

			app.Logger.Debug("recordAvailability command",
				zap.String("member_id", args[0]),
				zap.String("state", args[1]),
				zap.Int("dates", len(dates)))

			state := model.AvailabilityState(args[1])
			if err := services.RecordAvailability(app.Ctx, app.Database, app.Logger, args[0], dates, state, notes); err != nil {
				return err
			}

			fmt.Printf("\n✓ %s marked %s on %d dates\n\n", args[0], state, len(dates))
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Note shown with the availability")

	return cmd
}

// ViewCalendarCmd creates the viewCalendar command
func ViewCalendarCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewCalendar <member_id>",
		Short: "Show a member's availability with the races and events they can see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")

			from, to, err := dayRange(fromFlag, toFlag, 27, dateLoc, nowInClub(app))
			if err != nil {
				return err
			}

			view, err := services.ViewCalendar(app.Ctx, app.Database, app.Logger, app.CalendarFilter(), args[0], from, to)
			if err != nil {
				return err
			}

			fmt.Printf("\nCalendar for %s, %s to %s\n\n", view.Member.DisplayName(),
				from.Format("Mon Jan 02"), to.Format("Mon Jan 02"))

			if len(view.Days) == 0 {
				fmt.Println("Nothing recorded.")
				fmt.Println()
				return nil
			}

			for _, day := range view.Days {
				date, _ := parseDate(day.Date)
				fmt.Printf("  %s  ", date.Format("Mon Jan 02"))
				if day.Availability != nil {
					label, color := stateCell(day.Availability.State)
					fmt.Printf("%s%-14s%s", color, label, colorReset)
				} else {
					fmt.Printf("%-14s", "")
				}
				if day.Race != "" {
					fmt.Printf("  🏁 %s", day.Race)
				}
				if day.Event != "" {
					fmt.Printf("  📅 %s", day.Event)
				}
				if day.Availability != nil && day.Availability.Notes != "" {
					fmt.Printf("  (%s)", day.Availability.Notes)
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "First date to include (YYYY-MM-DD, default today)")
	cmd.Flags().String("to", "", "Last date to include (YYYY-MM-DD, default four weeks from --from)")

	return cmd
}
