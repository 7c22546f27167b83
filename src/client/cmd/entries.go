package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/apimgr/cwe/src/client/api"
)

func newWeaknessCmd(a *app) *cobra.Command {
	return newEntryCmd("weakness", "Query weakness entries",
		func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "weakness_info", func(ctx context.Context) (*api.WeaknessResponse, error) {
				return a.client.Weakness(ctx, args[0])
			})
		})
}

func newViewCmd(a *app) *cobra.Command {
	return newEntryCmd("view", "Query view entries",
		func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "view_info", func(ctx context.Context) (*api.ViewResponse, error) {
				return a.client.View(ctx, args[0])
			})
		})
}

func newCategoryCmd(a *app) *cobra.Command {
	return newEntryCmd("category", "Query category entries",
		func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "category_info", func(ctx context.Context) (*api.CategoryResponse, error) {
				return a.client.Category(ctx, args[0])
			})
		})
}

// newEntryCmd builds a group with a single info leaf.
func newEntryCmd(name, short string, info func(cmd *cobra.Command, args []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE:  requireSubcommand,
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "info <ids>",
		Short:   "Show full " + name + " entries (comma-separated ids or \"all\")",
		Example: "  " + binaryName + " " + name + " info 79",
		Args:    requireID,
		RunE:    info,
	})
	return cmd
}
