package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/outings"
	"github.com/dcbc/crewboard/pkg/core/services"
)

// ViewOutingsCmd creates the viewOutings command
func ViewOutingsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewOutings <member_id>",
		Short: "List a member's outings, the outings they cover, and everything else",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")
			showOther, _ := cmd.Flags().GetBool("all")

			loc := app.Cfg.Location()
			from, to := outings.WeekOf(time.Now().In(loc))
			if fromFlag != "" || toFlag != "" {
				var err error
				from, to, err = dayRange(fromFlag, toFlag, 6, loc, time.Now())
				if err != nil {
					return err
				}
			}

			app.Logger.Debug("viewOutings command", zap.String("member_id", args[0]), zap.Bool("all", showOther))

			view, err := services.ViewOutings(app.Ctx, app.Database, app.Logger, args[0], from, to)
			if err != nil {
				return err
			}

			fmt.Printf("\nOutings for %s, %s to %s\n", view.Viewer.DisplayName,
				from.Format("Mon Jan 02"), to.Format("Mon Jan 02"))

			printOutingSection("Your outings", view.Mine, loc)
			printOutingSection("Covering", view.Covering, loc)
			if showOther {
				printOutingSection("Other outings", view.Other, loc)
			} else if len(view.Other) > 0 {
				fmt.Printf("\n%d other outings (use --all to show them)\n", len(view.Other))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "First date to include (YYYY-MM-DD, default this week's Monday)")
	cmd.Flags().String("to", "", "Last date to include (YYYY-MM-DD, default six days after --from)")
	cmd.Flags().Bool("all", false, "Also list outings that don't involve the member")

	return cmd
}

// ViewOutingCmd creates the viewOuting command
func ViewOutingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewOuting <outing_id>",
		Short: "Show one outing with its resolved crew",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := services.ViewOuting(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Println()
			printOuting(*v, app.Cfg.Location())
			fmt.Println()
			return nil
		},
	}
}

func printOutingSection(title string, views []services.OutingView, loc *time.Location) {
	fmt.Printf("\n%s (%d):\n", title, len(views))
	if len(views) == 0 {
		fmt.Println("  none")
		return
	}
	for _, v := range views {
		printOuting(v, loc)
	}
}

func printOuting(v services.OutingView, loc *time.Location) {
	o := v.Outing
	fmt.Printf("  %s  %-12s", o.DateTime.In(loc).Format("Mon Jan 02 15:04"), o.BoatName)
	if o.Coach != "" {
		fmt.Printf("  coach: %s", o.Coach)
	}
	if o.TimeType != "" {
		fmt.Printf("  [%s]", o.TimeType)
	}
	fmt.Printf("  (%s)\n", o.ID)

	if v.Crew == nil {
		fmt.Println("      ⚠️  crew unavailable: boat not found")
		return
	}
	if v.Degraded {
		fmt.Println("      ⚠️  substitutions could not be read; showing the permanent crew")
	}

	for _, line := range v.Crew.Lines {
		if line.SubstituteID != "" {
			fmt.Printf("      %-7s %s → %s\n", line.Seat, line.MemberName, line.SubstituteName)
		} else {
			fmt.Printf("      %-7s %s\n", line.Seat, line.MemberName)
		}
	}
	for _, stale := range v.Crew.Stale {
		fmt.Printf("      ⚠️  %s is no longer in the boat (substitute %s ignored)\n", stale.OriginalID, stale.SubstituteID)
	}
	if covers := v.Crew.UnseatedCoverNames(); len(covers) > 0 {
		fmt.Printf("      covers: %v\n", covers)
	}
	if o.Notes != "" {
		fmt.Printf("      notes: %s\n", o.Notes)
	}
}
