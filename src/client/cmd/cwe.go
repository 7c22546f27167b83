package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/apimgr/cwe/src/client/api"
)

func newCWECmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cwe",
		Short: "Query CWE entries and their relationships",
		Args:  cobra.ArbitraryArgs,
		RunE:  requireSubcommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "info <ids>",
		Short:   "Show the entry type of one or more CWEs (comma-separated or \"all\")",
		Example: "  " + binaryName + " cwe info 79\n  " + binaryName + " cwe info 79,89",
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "cwe_info", func(ctx context.Context) (api.CWEInfoResponse, error) {
				return a.client.CWEInfo(ctx, args[0])
			})
		},
	})

	cmd.AddCommand(newRelationCmd(a, "parents", "Show the direct parents of a CWE", a.parents))
	cmd.AddCommand(newRelationCmd(a, "children", "Show the direct children of a CWE", a.children))

	var view optionalString
	descendants := &cobra.Command{
		Use:   "descendants <id>",
		Short: "Show the descendant tree of a CWE",
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "cwe_descendants", func(ctx context.Context) ([]api.DescendantNode, error) {
				return a.client.Descendants(ctx, args[0], view.value)
			})
		},
	}
	descendants.Flags().Var(&view, "view", "restrict to a view id")
	cmd.AddCommand(descendants)

	var ancestorView optionalString
	var primary optionalBool
	ancestors := &cobra.Command{
		Use:     "ancestors <id>",
		Short:   "Show the ancestor tree of a CWE",
		Example: "  " + binaryName + " cwe ancestors 79 --primary true --view 1000",
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "cwe_ancestors", func(ctx context.Context) ([]api.AncestorNode, error) {
				return a.client.Ancestors(ctx, args[0], primary.value, ancestorView.value)
			})
		},
	}
	ancestors.Flags().Var(&primary, "primary", "only follow primary parents")
	ancestors.Flags().Var(&ancestorView, "view", "restrict to a view id")
	cmd.AddCommand(ancestors)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the CWE content version served by the API",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "cwe_version", a.client.Version)
		},
	})

	return cmd
}

type relationFunc func(ctx context.Context, id string, view *string) ([]api.Relation, error)

func (a *app) parents(ctx context.Context, id string, view *string) ([]api.Relation, error) {
	return a.client.Parents(ctx, id, view)
}

func (a *app) children(ctx context.Context, id string, view *string) ([]api.Relation, error) {
	return a.client.Children(ctx, id, view)
}

// newRelationCmd builds the parents and children commands, which share
// their shape.
func newRelationCmd(a *app, name, short string, fetch relationFunc) *cobra.Command {
	var view optionalString
	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(a, cmd, "cwe_"+name, func(ctx context.Context) ([]api.Relation, error) {
				return fetch(ctx, args[0], view.value)
			})
		},
	}
	cmd.Flags().Var(&view, "view", "restrict to a view id")
	return cmd
}
