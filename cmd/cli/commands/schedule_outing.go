package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// ScheduleOutingCmd creates the scheduleOuting command
func ScheduleOutingCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduleOuting <\"YYYY-MM-DD HH:MM\"> [boat]",
		Short: "Schedule an outing for a boat, or a scratch outing with --seat",
		Long: `Schedule an outing for a boat, or a scratch outing with --seat.

Rostered outings use the boat's permanent crew; --sub original=substitute records
a substitution up front. Scratch outings list their crew with --seat seat=member.
--repeat takes an RRULE, e.g. "FREQ=WEEKLY;BYDAY=TU,TH", expanded up to the
configured recurrence horizon.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seatArgs, _ := cmd.Flags().GetStringArray("seat")
			subArgs, _ := cmd.Flags().GetStringArray("sub")
			covers, _ := cmd.Flags().GetString("covers")
			shell, _ := cmd.Flags().GetString("shell")
			coach, _ := cmd.Flags().GetString("coach")
			timeType, _ := cmd.Flags().GetString("time-type")
			notes, _ := cmd.Flags().GetString("notes")
			repeat, _ := cmd.Flags().GetString("repeat")

			start, err := parseDateTime(args[0], app.Cfg.Location())
			if err != nil {
				return err
			}

			req := services.OutingRequest{
				Start:      start,
				Subs:       model.NewSet(splitList(covers)...),
				Shell:      shell,
				Coach:      coach,
				TimeType:   timeType,
				Notes:      notes,
				Recurrence: repeat,
			}
			if len(args) > 1 {
				req.BoatName = args[1]
			}
			if req.Coach == "" {
				req.Coach = app.Cfg.DefaultCoach
			}
			if !cmd.Flags().Changed("repeat") {
				req.Recurrence = app.Cfg.DefaultRecurrence
			}

			if len(seatArgs) > 0 {
				req.Scratch = true
				if req.ScratchCrew, err = parseSeats(seatArgs); err != nil {
					return err
				}
			} else if req.BoatName == "" {
				return fmt.Errorf("a boat name is required unless the crew is given with --seat")
			}
			if req.SetCrew, err = parseOverrides(subArgs); err != nil {
				return err
			}

			app.Logger.Debug("scheduleOuting command",
				zap.Time("start", start),
				zap.String("boat", req.BoatName),
				zap.Bool("scratch", req.Scratch),
				zap.String("repeat", req.Recurrence))

			created, err := services.ScheduleOuting(app.Ctx, app.Database, app.Logger, req, app.Cfg.RecurrenceHorizonWeeks)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Scheduled %d outings for %s\n\n", len(created), created[0].BoatName)
			loc := app.Cfg.Location()
			for i, o := range created {
				fmt.Printf("  %2d. %s  %s\n", i+1, o.DateTime.In(loc).Format("Mon Jan 02 2006 15:04"), o.ID)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringArray("seat", nil, "Scratch crew seat assignment seat=member_id (repeatable)")
	cmd.Flags().StringArray("sub", nil, "Substitution original_id=substitute (repeatable)")
	cmd.Flags().String("covers", "", "Comma separated cover volunteers")
	cmd.Flags().String("shell", "", "Shell to use (defaults to the boat's shell)")
	cmd.Flags().String("coach", "", "Coach name (defaults to defaultCoach from config)")
	cmd.Flags().String("time-type", "", "Session label, e.g. am or pm")
	cmd.Flags().String("notes", "", "Free-text notes")
	cmd.Flags().String("repeat", "", "RRULE for a recurring series (defaults to defaultRecurrence from config)")

	return cmd
}
