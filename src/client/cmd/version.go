package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/cwe/src/common/version"
)

// versionReport is the record behind the top-level version command.
type versionReport struct {
	CLIVersion     string `json:"cli_version,omitempty"`
	APIVersion     string `json:"api_version,omitempty"`
	APIContentDate string `json:"api_content_date,omitempty"`
}

func newVersionCmd(a *app) *cobra.Command {
	var cli, apiVersion, std bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the CLI version and optionally the API content version",
		Long: `Show the CLI version. With --api the CWE content version served by the
API is fetched as well.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if std {
				fmt.Fprintln(a.opts.Err, "Flag --std has been deprecated, use --api instead")
			}
			withAPI := apiVersion || std
			return dispatch(a, cmd, "version", func(ctx context.Context) (*versionReport, error) {
				result := &versionReport{}
				if cli {
					result.CLIVersion = version.GetShort()
				}
				if !withAPI {
					return result, nil
				}
				content, err := a.client.Version(ctx)
				if err != nil {
					return nil, err
				}
				result.APIVersion = content.ContentVersion
				result.APIContentDate = content.ContentDate
				return result, nil
			})
		},
	}

	cmd.Flags().BoolVar(&cli, "cli", true, "show the CLI version")
	cmd.Flags().BoolVar(&apiVersion, "api", false, "fetch the API content version")
	cmd.Flags().BoolVar(&std, "std", false, "deprecated alias for --api")
	// MarkDeprecated would print its notice on stdout; RunE warns on stderr.
	cmd.Flags().MarkHidden("std")

	return cmd
}
