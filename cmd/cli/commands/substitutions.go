package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/services"
)

// AddSubstituteCmd creates the addSubstitute command
func AddSubstituteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addSubstitute <outing_id> <original_id> <substitute>",
		Short: "Replace a crew member for one outing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("addSubstitute command",
				zap.String("outing_id", args[0]),
				zap.String("original_id", args[1]),
				zap.String("substitute", args[2]))

			if _, err := services.AddSubstitute(app.Ctx, app.Database, app.Logger, args[0], args[1], args[2]); err != nil {
				return err
			}

			fmt.Printf("\n✓ %s subs for %s in outing %s\n\n", args[2], args[1], args[0])
			return nil
		},
	}
}

// RemoveSubstituteCmd creates the removeSubstitute command
func RemoveSubstituteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeSubstitute <outing_id> <original_id>",
		Short: "Put a crew member back in their seat for one outing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.RemoveSubstitute(app.Ctx, app.Database, app.Logger, args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("\n✓ %s is back in their seat for outing %s\n\n", args[1], args[0])
			return nil
		},
	}
}

// AddCoverCmd creates the addCover command
func AddCoverCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addCover <outing_id> <cover>",
		Short: "Add a cover volunteer to an outing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := services.AddCover(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Covers for outing %s: %v\n\n", o.ID, []string(o.Subs))
			return nil
		},
	}
}

// DeleteOutingCmd creates the deleteOuting command
func DeleteOutingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteOuting <outing_id>",
		Short: "Permanently delete an outing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteOuting(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Outing %s deleted\n\n", args[0])
			return nil
		},
	}
}
