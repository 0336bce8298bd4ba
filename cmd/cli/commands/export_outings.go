package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/services"
)

// ExportOutingsCmd creates the exportOutings command
func ExportOutingsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportOutings <member_id>",
		Short: "Export a member's outings as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")

			loc := app.Cfg.Location()
			from, to, err := dayRange(fromFlag, toFlag, 27, loc, time.Now())
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			app.Logger.Debug("exportOutings command", zap.String("member_id", args[0]), zap.String("output", output))

			n, err := services.ExportOutings(app.Ctx, app.Database, app.Logger, args[0], from, to, w)
			if err != nil {
				return err
			}

			if output != "-" {
				fmt.Printf("\n✓ Exported %d outings to %s\n\n", n, output)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "outings.ics", "File to write, or - for stdout")
	cmd.Flags().String("from", "", "First date to include (YYYY-MM-DD, default today)")
	cmd.Flags().String("to", "", "Last date to include (YYYY-MM-DD, default four weeks from --from)")

	return cmd
}
