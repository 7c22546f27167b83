// Package cmd implements the cwe-cli command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/cwe/src/client/api"
	"github.com/apimgr/cwe/src/client/paths"
	"github.com/apimgr/cwe/src/client/report"
	"github.com/apimgr/cwe/src/common/terminal"
	"github.com/apimgr/cwe/src/common/version"
)

// binaryName is used in help text and the User-Agent.
const binaryName = "cwe-cli"

// Options carries process-level dependencies into the command tree.
type Options struct {
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger
	// RequestID is sent as X-Request-ID. Logger is expected to carry it
	// already; when empty one is generated and attached to Logger.
	RequestID string
}

// app holds the state shared by the commands of one invocation.
type app struct {
	opts      Options
	v         *viper.Viper
	logger    *slog.Logger
	requestID string

	cfgFile string
	noColor bool

	client   *api.Client
	reporter *report.Reporter
}

// Execute builds the command tree, runs it with args and prints usage for
// usage errors. The returned error is suitable for ExitCode.
func Execute(ctx context.Context, args []string, opts Options) error {
	if args == nil {
		args = []string{}
	}
	root := NewRootCmd(opts)
	root.SetArgs(args)

	c, err := root.ExecuteContextC(ctx)
	var usageErr *UsageError
	if errors.As(err, &usageErr) && c != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n\n%s", err, c.UsageString())
		usageErr.Reported = true
	}
	return err
}

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.RequestID == "" {
		opts.RequestID = uuid.NewString()
		opts.Logger = opts.Logger.With("request_id", opts.RequestID)
	}

	a := &app{
		opts:      opts,
		v:         viper.New(),
		requestID: opts.RequestID,
		logger:    opts.Logger.With("component", "cmd"),
	}

	rootCmd := &cobra.Command{
		Use:   binaryName,
		Short: "CLI client for the CWE API",
		Long: binaryName + ` queries the Common Weakness Enumeration REST API and prints
the results as JSON or as human-readable text.

Examples:
  ` + binaryName + ` cwe info 79
  ` + binaryName + ` cwe ancestors 79 --primary true --view 1000
  ` + binaryName + ` weakness info 79 --format human
  ` + binaryName + ` version --api`,
		Args:              cobra.ArbitraryArgs,
		RunE:              requireSubcommand,
		PersistentPreRunE: a.preRun,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	flags.StringP("format", "f", "", "output format: json, human (default human)")
	flags.StringP("server", "s", "", "API base URL (default "+api.DefaultBaseURL+")")
	flags.Int("timeout", 0, "request timeout in seconds (default 30)")
	flags.String("templates", "", "directory of *.tmpl files overriding the built-in human templates")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	a.v.BindPFlag("output.format", flags.Lookup("format"))
	a.v.BindPFlag("server.address", flags.Lookup("server"))
	a.v.BindPFlag("server.timeout", flags.Lookup("timeout"))
	a.v.BindPFlag("output.template_dir", flags.Lookup("templates"))

	rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return report.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCWECmd(a))
	rootCmd.AddCommand(newWeaknessCmd(a))
	rootCmd.AddCommand(newViewCmd(a))
	rootCmd.AddCommand(newCategoryCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newShellCmd(a))
	rootCmd.AddCommand(newTUICmd(a))

	return rootCmd
}

// preRun runs after arguments are validated and before any command body.
// It loads configuration and prepares the client; it never touches the
// network.
func (a *app) preRun(cmd *cobra.Command, args []string) error {
	// config subcommands must work before the file they manage exists.
	allowMissing := a.cfgFile == "" || (cmd.Parent() != nil && cmd.Parent().Name() == "config")
	if err := a.initConfig(allowMissing); err != nil {
		return err
	}

	a.client = api.NewClient(
		a.v.GetString("server.address"),
		a.v.GetInt("server.timeout"),
		a.opts.Logger,
	)
	a.client.UserAgent = version.Get().UserAgent(binaryName)
	a.client.RequestID = a.requestID

	color, force := a.colorMode()
	a.reporter = report.New(a.opts.Out, report.Options{
		TemplateDir: a.v.GetString("output.template_dir"),
		Color:       color,
		ForceColor:  force,
		Width:       terminal.Width(a.opts.Out),
		Logger:      a.opts.Logger,
	})

	a.logger.Debug("configuration loaded",
		"command", cmd.CommandPath(),
		"server", a.client.BaseURL,
		"config", a.v.ConfigFileUsed(),
	)
	return nil
}

// initConfig layers defaults, the config file and CWE_* environment
// variables under the flags bound in NewRootCmd. A missing file is an
// error unless allowMissing is set.
func (a *app) initConfig(allowMissing bool) error {
	v := a.v

	v.SetDefault("server.address", api.DefaultBaseURL)
	v.SetDefault("server.timeout", api.DefaultTimeout)
	v.SetDefault("output.format", string(report.FormatHuman))
	v.SetDefault("output.color", "auto")
	v.SetDefault("output.template_dir", "")

	v.SetEnvPrefix("CWE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := paths.ResolveConfigPath(a.cfgFile)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// colorMode reports whether human output is styled and whether styling is
// forced regardless of the output device.
func (a *app) colorMode() (color, force bool) {
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		return false, false
	}
	switch strings.ToLower(a.v.GetString("output.color")) {
	case "never", "false", "off":
		return false, false
	case "always", "true", "on":
		return true, true
	default:
		return terminal.IsTerminal(a.opts.Out), false
	}
}

// outputFormat validates the configured output format.
func (a *app) outputFormat() (report.Format, error) {
	format, err := report.ParseFormat(a.v.GetString("output.format"))
	if err != nil {
		return "", &UsageError{Err: err}
	}
	return format, nil
}
