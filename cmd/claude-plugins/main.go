package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mintuz/claude-plugins/pkg/logger"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("CLAUDE_PLUGINS")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.claude-plugins")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "claude-plugins",
	Short: "Manage the claude-plugins skill, agent, and command bundle",
	Long: `claude-plugins manages a bundle of markdown skills, agents, and slash
commands for an AI coding-assistant host: validate the corpus, inspect its
contents, install it into the host's directories, and run the session
keepawake hooks.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// truncate shortens s to at most max runes, appending "..." when cut.
// Slicing runes rather than bytes keeps multi-byte descriptions intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func bundleRoot() string {
	root := viper.GetString("root")
	if root == "" {
		root = "."
	}
	return root
}

func main() {
	rootCmd.PersistentFlags().String("root", ".", "Bundle root directory")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-error output")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "text")

	// Add subcommands
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(marketplaceCmd)
	rootCmd.AddCommand(keepawakeCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
