package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcbc/crewboard/pkg/core/services"
)

// ImportMembersCmd creates the importMembers command
func ImportMembersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importMembers",
		Short: "Import the club roster from the members sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportMembers(app.Ctx, app.Database, client, app.Logger, app.Cfg.MembersSheetID, app.Cfg.MembersTab)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Members imported: %d new, %d updated\n\n", result.Created, result.Updated)
			return nil
		},
	}
}
