// Package config provides CLI commands for managing teamboard configuration.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/teamboard/internal/config"
	tuiconfig "github.com/Iron-Ham/teamboard/internal/tui/config"
)

// Register adds all config-related commands to the given parent command.
// This is the main entry point for integrating the config subpackage with
// the root command.
func Register(parent *cobra.Command) {
	parent.AddCommand(NewCommand())
}

// NewCommand builds the config command tree.
func NewCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify teamboard configuration",
		Long: `View or modify teamboard configuration.

Without arguments, opens an interactive configuration UI.
Use 'config show' to display configuration non-interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tuiconfig.Run()
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			RunE:  runConfigShow,
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the configuration",
			RunE:  runConfigValidate,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the config file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), appconfig.ConfigFile())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  teamboard config set wizard.mirror query
  teamboard config set logging.enabled true

Valid keys:
` + keyHelp(),
			Args: cobra.ExactArgs(2),
			RunE: runConfigSet,
		},
		&cobra.Command{
			Use:   "reset [key]",
			Short: "Reset configuration to defaults",
			Long: `Reset configuration values to their defaults.

Without arguments, resets every key. With a key argument, resets only that key.`,
			Args: cobra.MaximumNArgs(1),
			RunE: runConfigReset,
		},
	)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	settings := make(map[string]any)
	for _, key := range appconfig.Keys() {
		setNested(settings, key, viper.Get(key))
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := appconfig.Load(); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	kind, ok := appconfig.KeyKinds()[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'teamboard config set --help' to see valid keys", key)
	}

	var typed any = value
	if kind == appconfig.KindBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typed = b
	}

	previous := viper.Get(key)
	viper.Set(key, typed)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := writeConfig(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typed)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := appconfig.DefaultValues()

	keys := appconfig.Keys()
	if len(args) == 1 {
		if _, ok := defaults[args[0]]; !ok {
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}
		keys = []string{args[0]}
	}
	for _, key := range keys {
		viper.Set(key, defaults[key])
	}

	if err := writeConfig(); err != nil {
		return err
	}
	if len(args) == 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to default\n", args[0])
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Reset all configuration to defaults")
	}
	return nil
}

func writeConfig() error {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path := viper.ConfigFileUsed()
	if path == "" {
		path = appconfig.ConfigFile()
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setNested stores value under a dotted key in a nested map.
func setNested(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		child, ok := m[p].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[p] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = value
}

func keyHelp() string {
	kinds := appconfig.KeyKinds()
	keys := make([]string, 0, len(kinds))
	for k := range kinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-20s (%s)\n", k, kinds[k])
	}
	return b.String()
}
