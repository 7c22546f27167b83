package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var supportedShells = []string{"bash", "zsh", "fish", "powershell", "pwsh"}

func newShellCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Shell integration commands",
		Long:  `Shell integration for completions and init scripts.`,
		Args:  cobra.ArbitraryArgs,
		RunE:  requireSubcommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "completions [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion script for the specified shell.
If no shell is specified, auto-detects from $SHELL environment variable.

Examples:
  ` + binaryName + ` shell completions > ~/.local/share/bash-completion/completions/` + binaryName + `
  ` + binaryName + ` shell completions zsh > ~/.zsh/completions/_` + binaryName + `
  ` + binaryName + ` shell completions fish > ~/.config/fish/completions/` + binaryName + `.fish`,
		Args:      shellArgs,
		ValidArgs: supportedShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCompletions(cmd.Root(), cmd.OutOrStdout(), shellFromArgs(args))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init [bash|zsh|fish|powershell]",
		Short: "Generate shell init command",
		Long: `Generate shell init command for eval.
If no shell is specified, auto-detects from $SHELL environment variable.

Add to your shell rc file:
  eval "$(` + binaryName + ` shell init)"`,
		Args:      shellArgs,
		ValidArgs: supportedShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInit(cmd.OutOrStdout(), shellFromArgs(args))
		},
	})

	return cmd
}

func shellArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &UsageError{Err: fmt.Errorf("%s accepts at most 1 arg, received %d", cmd.CommandPath(), len(args))}
	}
	return nil
}

func shellFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return detectShell()
}

// detectShell returns the base name of $SHELL, defaulting to bash.
func detectShell() string {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return "bash"
	}
	// Handle both Unix forward slash and Windows backslash separators
	base := filepath.Base(shellPath)
	if idx := strings.LastIndex(base, "\\"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".exe")
}

func printCompletions(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell", "pwsh":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return &UsageError{Err: fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)}
	}
}

func printInit(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		fmt.Fprintf(w, "source <(%s shell completions bash)\n", binaryName)
	case "zsh":
		fmt.Fprintf(w, "source <(%s shell completions zsh)\n", binaryName)
	case "fish":
		fmt.Fprintf(w, "%s shell completions fish | source\n", binaryName)
	case "powershell", "pwsh":
		fmt.Fprintf(w, "Invoke-Expression (& %s shell completions powershell | Out-String)\n", binaryName)
	default:
		return &UsageError{Err: fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)}
	}
	return nil
}
