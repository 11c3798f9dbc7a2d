package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mintuz/claude-plugins/pkg/bundle"
	"github.com/mintuz/claude-plugins/pkg/installer"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

type InstallConfig struct {
	Global bool
	Force  bool
	DryRun bool
}

func NewInstallConfig() *InstallConfig {
	return &InstallConfig{
		Global: false,
		Force:  false,
		DryRun: false,
	}
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the bundle into the host's directories",
	Long: `Install the bundle's skills, agents, and commands into the host's plugin
directories. By default the bundle is installed into the project-local
./.claude directory; use --global to install into ~/.claude instead.

Existing entries are left alone unless --force is given. Use --dry-run to
see what would change without writing anything.

Examples:
  claude-plugins install
  claude-plugins install --global
  claude-plugins install --force
  claude-plugins install --dry-run`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getInstallConfigFromFlags(cmd)
		runInstall(cmd, config)
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the bundle from the host's directories",
	Long: `Remove the bundle's skills, agents, and commands from the host's plugin
directories. Only entries whose names match the bundle are removed; other
installed plugins are untouched.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getInstallConfigFromFlags(cmd)
		runUninstall(cmd, config)
	},
}

func init() {
	defaults := NewInstallConfig()
	installCmd.Flags().BoolP("global", "g", defaults.Global, "Install to ~/.claude instead of ./.claude")
	installCmd.Flags().BoolP("force", "f", defaults.Force, "Overwrite entries that already exist")
	installCmd.Flags().Bool("dry-run", defaults.DryRun, "Show what would change without writing anything")

	uninstallCmd.Flags().BoolP("global", "g", defaults.Global, "Remove from ~/.claude instead of ./.claude")
}

func getInstallConfigFromFlags(cmd *cobra.Command) *InstallConfig {
	config := NewInstallConfig()
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	if force, err := cmd.Flags().GetBool("force"); err == nil {
		config.Force = force
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		config.DryRun = dryRun
	}
	return config
}

func loadBundleOrExit(cmd *cobra.Command) *bundle.Bundle {
	b, err := bundle.Load(cmd.Context(), bundleRoot())
	if err != nil {
		presenter.Error(err, "Failed to load bundle")
		os.Exit(1)
	}
	return b
}

func runInstall(cmd *cobra.Command, config *InstallConfig) {
	b := loadBundleOrExit(cmd)

	inst, err := installer.New(
		installer.WithGlobal(config.Global),
		installer.WithForce(config.Force),
		installer.WithDryRun(config.DryRun),
	)
	if err != nil {
		presenter.Error(err, "Failed to initialize installer")
		os.Exit(1)
	}

	result, err := inst.Install(cmd.Context(), b)
	if err != nil {
		presenter.Error(err, "Installation failed")
		os.Exit(1)
	}

	if config.DryRun {
		for _, diff := range result.Diffs {
			fmt.Print(diff)
		}
		presenter.Info(fmt.Sprintf("Would install %d entries to %s (%d already present)", len(result.Installed), inst.TargetDir(), len(result.Skipped)))
		return
	}

	for _, entry := range result.Installed {
		presenter.Success(fmt.Sprintf("Installed %s", entry))
	}
	for _, entry := range result.Skipped {
		presenter.Warning(fmt.Sprintf("Skipped %s (already exists, use --force to overwrite)", entry))
	}
	presenter.Info(fmt.Sprintf("Installed %d entries to %s", len(result.Installed), inst.TargetDir()))
}

func runUninstall(cmd *cobra.Command, config *InstallConfig) {
	b := loadBundleOrExit(cmd)

	inst, err := installer.New(installer.WithGlobal(config.Global))
	if err != nil {
		presenter.Error(err, "Failed to initialize installer")
		os.Exit(1)
	}

	result, err := inst.Uninstall(cmd.Context(), b)
	if err != nil {
		presenter.Error(err, "Uninstall failed")
		os.Exit(1)
	}

	for _, entry := range result.Removed {
		presenter.Success(fmt.Sprintf("Removed %s", entry))
	}
	presenter.Info(fmt.Sprintf("Removed %d entries from %s", len(result.Removed), inst.TargetDir()))
}
