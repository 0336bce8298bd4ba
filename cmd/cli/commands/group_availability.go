package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// Calendar dates are UTC midnights
var dateLoc = time.UTC

// GroupAvailabilityCmd creates the groupAvailability command
func GroupAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groupAvailability",
		Short: "Show the availability of a squad, tag group or boat across a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			squad, _ := cmd.Flags().GetString("squad")
			tag, _ := cmd.Flags().GetString("tag")
			boat, _ := cmd.Flags().GetString("boat")
			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")

			from, to, err := dayRange(fromFlag, toFlag, 6, dateLoc, nowInClub(app))
			if err != nil {
				return err
			}

			app.Logger.Debug("groupAvailability command",
				zap.String("squad", squad),
				zap.String("tag", tag),
				zap.String("boat", boat))

			filter := services.GroupFilter{Squad: squad, Tag: tag, Boat: boat}
			view, err := services.GroupAvailability(app.Ctx, app.Database, app.Logger, filter, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("\nAvailability %s to %s (%d members)\n\n", from.Format("Jan 02"), to.Format("Jan 02"), len(view.Rows))
			if len(view.Dates) == 0 {
				fmt.Println("No availability recorded in this range.")
				fmt.Println()
				return nil
			}

			// Calculate column widths
			maxNameLen := 20
			for _, row := range view.Rows {
				if len(row.Member.DisplayName()) > maxNameLen {
					maxNameLen = len(row.Member.DisplayName())
				}
			}
			nameColWidth := maxNameLen + 2
			dateColWidth := 14

			// Header row with dates
			fmt.Printf("%-*s", nameColWidth, "")
			for _, d := range view.Dates {
				date, _ := parseDate(d)
				fmt.Printf("%-*s", dateColWidth, date.Format("Mon Jan 02"))
			}
			fmt.Println()

			fmt.Print(strings.Repeat("-", nameColWidth))
			for range view.Dates {
				fmt.Print(strings.Repeat("-", dateColWidth))
			}
			fmt.Println()

			for _, row := range view.Rows {
				fmt.Printf("%-*s", nameColWidth, row.Member.DisplayName())
				for _, d := range view.Dates {
					label, color := stateCell(row.States[d])
					fmt.Printf("%s%-*s%s", color, dateColWidth, label, colorReset)
				}
				fmt.Println()
			}

			// Legend
			fmt.Println()
			fmt.Println("Legend:")
			for _, state := range []model.AvailabilityState{model.StateAvailable, model.StateIfRequired, model.StateNotAvailable, model.StateOutOfCam, ""} {
				label, color := stateCell(state)
				fmt.Printf("  %s%s%s\n", color, label, colorReset)
			}

			return nil
		},
	}

	cmd.Flags().String("squad", "", "Only members of this squad")
	cmd.Flags().String("tag", "", "Only members holding this tag")
	cmd.Flags().String("boat", "", "Only members of this boat")
	cmd.Flags().String("from", "", "First date to include (YYYY-MM-DD, default today)")
	cmd.Flags().String("to", "", "Last date to include (YYYY-MM-DD, default six days after --from)")

	return cmd
}

// stateCell returns the label and color used to show an availability state
func stateCell(state model.AvailabilityState) (string, string) {
	switch state {
	case model.StateAvailable:
		return "Available", colorGreen
	case model.StateIfRequired:
		return "If required", colorYellow
	case model.StateNotAvailable:
		return "Not available", colorRed
	case model.StateOutOfCam:
		return "Out of Cam", colorDim
	default:
		return "-", colorDim
	}
}

// nowInClub returns today's date in the club's timezone as a UTC calendar date
func nowInClub(app *AppContext) time.Time {
	now := time.Now().In(app.Cfg.Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, dateLoc)
}
