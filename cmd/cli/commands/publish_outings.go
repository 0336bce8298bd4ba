package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dcbc/crewboard/pkg/core/services"
)

// PublishOutingsCmd creates the publishOutings command
func PublishOutingsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishOutings [YYYY-MM-DD]",
		Short: "Publish the week's outings to the outings sheet (defaults to this week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.Cfg.Location()
			day := time.Now().In(loc)
			if len(args) > 0 {
				d, err := parseDate(args[0])
				if err != nil {
					return err
				}
				day = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			week, err := services.PublishOutings(app.Ctx, app.Database, client, app.Logger, app.Cfg.OutingsSheetID, day)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published %d outings to tab %q\n\n", len(week.Rows), week.TabTitle())
			return nil
		},
	}
}
