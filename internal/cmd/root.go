// Package cmd implements the teamboard command line.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/teamboard/internal/cmd/config"
	"github.com/Iron-Ham/teamboard/internal/config"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "teamboard",
		Short: "Role-based team and HR dashboard",
		Long: `Teamboard routes signed-in users to the dashboard for their role and
walks new users through a step-by-step onboarding wizard.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/teamboard/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(
		newOnboardCmd(),
		newRouteCmd(),
		newStepsCmd(),
		newSessionCmd(),
	)
	configcmd.Register(rootCmd)
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TEAMBOARD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TEAMBOARD_WIZARD_MIRROR for wizard.mirror
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
