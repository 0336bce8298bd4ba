package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcbc/crewboard/pkg/core/services"
)

// SetMemberTagsCmd creates the setMemberTags command
func SetMemberTagsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setMemberTags <member_id> [tag ...]",
		Short: "Replace a member's tags (no tags clears them)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := services.SetMemberTags(app.Ctx, app.Database, app.Logger, args[0], args[1:])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Tags for %s: %v\n\n", m.DisplayName(), []string(m.Tags))
			return nil
		},
	}
}

// ListTagsCmd creates the listTags command
func ListTagsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listTags",
		Short: "List every tag in use and how many members hold it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := services.ListTags(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d tags:\n\n", len(tags))
			for _, tag := range tags {
				fmt.Printf("- %-20s %d members\n", tag.Tag, tag.Members)
			}
			fmt.Println()
			return nil
		},
	}
}
