package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apimgr/cwe/src/client/api"
)

// UsageError marks an invocation problem (unknown command, bad flag,
// missing argument, invalid parameter value). It is detected before any
// request is sent and exits with status 2.
type UsageError struct {
	Err error
	// Reported is set once Execute has printed the error with usage text.
	Reported bool
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return 2
	}
	return 1
}

// IsReported reports whether Execute already printed err.
func IsReported(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr) && usageErr.Reported
}

// requireSubcommand is the RunE of group commands. Cobra would otherwise
// print help and succeed on an unknown or missing subcommand.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &UsageError{Err: fmt.Errorf("%s requires a subcommand", cmd.CommandPath())}
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	// cobra only sets this default when it resolves the command itself.
	if cmd.SuggestionsMinimumDistance <= 0 {
		cmd.SuggestionsMinimumDistance = 2
	}
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += "\n\nDid you mean this?\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &UsageError{Err: errors.New(msg)}
}

// requireID accepts exactly one positional argument.
func requireID(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return &UsageError{Err: fmt.Errorf("%s requires an id argument", cmd.CommandPath())}
	case 1:
		return nil
	default:
		return &UsageError{Err: fmt.Errorf("%s accepts one id argument, received %d", cmd.CommandPath(), len(args))}
	}
}

// noArgs rejects positional arguments.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &UsageError{Err: fmt.Errorf("unknown argument %q for %q", args[0], cmd.CommandPath())}
	}
	return nil
}

// usageFromValidation turns parameter validation failures into usage
// errors; other errors pass through unchanged.
func usageFromValidation(err error) error {
	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		return &UsageError{Err: err}
	}
	return err
}
