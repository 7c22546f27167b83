package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/cwe/src/client/paths"
	"github.com/apimgr/cwe/src/client/report"
)

// configKeys lists the settings the CLI reads, with a validator for
// values given to config set.
var configKeys = map[string]func(string) (any, error){
	"server.address": func(s string) (any, error) {
		if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return nil, fmt.Errorf("must be an http or https URL")
		}
		return strings.TrimRight(s, "/"), nil
	},
	"server.timeout": func(s string) (any, error) {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("must be a positive number of seconds")
		}
		return n, nil
	},
	"output.format": func(s string) (any, error) {
		format, err := report.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		return format.String(), nil
	},
	"output.color": func(s string) (any, error) {
		switch v := strings.ToLower(s); v {
		case "auto", "always", "never":
			return v, nil
		default:
			return nil, fmt.Errorf("must be auto, always or never")
		}
	},
	"output.template_dir": func(s string) (any, error) {
		return s, nil
	},
}

const defaultConfig = `# cwe-cli configuration
server:
  address: https://cwe-api.mitre.org/api/v1
  timeout: 30

output:
  # json or human
  format: human
  # auto, always or never
  color: auto
  # directory of *.tmpl files overriding the built-in human templates
  template_dir: ""
`

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage the CLI configuration file.

Settings are read from flags, then CWE_* environment variables (for example
CWE_SERVER_ADDRESS), then the config file, then built-in defaults.`,
		Args: cobra.ArbitraryArgs,
		RunE: requireSubcommand,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration as YAML",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.v.AllSettings())
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "get <key>",
		Short:     "Print one effective configuration value",
		Args:      keyArgs(1),
		ValidArgs: knownKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.v.Get(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Write a value to the config file",
		Args:      keyArgs(2),
		ValidArgs: knownKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			value, err := configKeys[key](raw)
			if err != nil {
				return &UsageError{Err: fmt.Errorf("invalid value %q for %s: %w", raw, key, err)}
			}

			path, err := paths.ResolveConfigPath(a.cfgFile)
			if err != nil {
				return err
			}

			// Only the file's own contents are rewritten, not values
			// coming from flags or the environment.
			file := viper.New()
			file.SetConfigFile(path)
			if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("read config %s: %w", path, err)
			}
			file.Set(key, value)

			if err := paths.EnsureFile(path); err != nil {
				return err
			}
			if err := file.WriteConfigAs(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			a.logger.Info("config updated", "key", key, "path", path)

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with default settings",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.ResolveConfigPath(a.cfgFile)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
			}
			if err := paths.EnsureFile(path); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.ResolveConfigPath(a.cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

// keyArgs requires n arguments, the first being a known config key.
func keyArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{Err: fmt.Errorf("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))}
		}
		if _, ok := configKeys[args[0]]; !ok {
			return &UsageError{Err: fmt.Errorf("unknown config key %q (valid: %s)", args[0], strings.Join(knownKeys(), ", "))}
		}
		return nil
	}
}

func knownKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
