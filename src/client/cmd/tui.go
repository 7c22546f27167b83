package cmd

import (
	"github.com/spf13/cobra"

	"github.com/apimgr/cwe/src/client/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse CWE entries interactively",
		Long: `Launch an interactive browser. Type a CWE id (79 or CWE-79), view:ID or
category:ID and press Enter to fetch and display the entry.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Debug("starting tui")
			return tui.Run(cmd.Context(), a.client, a.reporter, a.opts.Logger)
		},
	}
}
