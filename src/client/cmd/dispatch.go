package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// dispatch validates the output format, runs fetch and reports its result
// under the template name. Parameter validation errors from fetch become
// usage errors; nothing is written when fetch fails.
func dispatch[T any](a *app, cmd *cobra.Command, name string, fetch func(ctx context.Context) (T, error)) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}

	a.logger.Debug("dispatching command", "command", cmd.CommandPath(), "template", name)

	result, err := fetch(cmd.Context())
	if err != nil {
		return usageFromValidation(err)
	}
	return a.reporter.Report(format, name, result)
}
