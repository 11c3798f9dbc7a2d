package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/mintuz/claude-plugins/pkg/bundle"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

type ValidateConfig struct {
	Includes []string
	Watch    bool
}

func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Includes: nil,
		Watch:    false,
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the bundle",
	Long: `Validate every skill, agent, command, and the marketplace manifest in the
bundle, reporting all problems at once rather than stopping at the first.

Examples:
  claude-plugins validate
  claude-plugins validate --include 'skills/**'
  claude-plugins validate --watch`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getValidateConfigFromFlags(cmd)
		runValidate(cmd, config)
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().StringSlice("include", defaults.Includes, "Only validate entries matching these glob patterns (e.g. 'skills/**')")
	validateCmd.Flags().BoolP("watch", "w", defaults.Watch, "Re-validate whenever files under the bundle root change")
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if includes, err := cmd.Flags().GetStringSlice("include"); err == nil {
		config.Includes = includes
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}
	return config
}

func runValidate(cmd *cobra.Command, config *ValidateConfig) {
	root := bundleRoot()

	if config.Watch {
		validateOnce(cmd, root, config)
		presenter.Info(fmt.Sprintf("Watching %s for changes (ctrl-c to stop)", root))
		if err := bundle.Watch(cmd.Context(), root, func() {
			presenter.Separator()
			validateOnce(cmd, root, config)
		}); err != nil && cmd.Context().Err() == nil {
			presenter.Error(err, "Watcher stopped")
			os.Exit(1)
		}
		return
	}

	if !validateOnce(cmd, root, config) {
		os.Exit(1)
	}
}

func validateOnce(cmd *cobra.Command, root string, config *ValidateConfig) bool {
	b, err := bundle.Load(cmd.Context(), root)
	if err != nil {
		presenter.Error(err, "Failed to load bundle")
		return false
	}

	err = b.Validate(bundle.WithIncludes(config.Includes...))
	if err == nil {
		skillCount, agentCount, commandCount := b.Counts()
		presenter.Success(fmt.Sprintf("Bundle is valid: %d skills, %d agents, %d commands", skillCount, agentCount, commandCount))
		return true
	}

	if merr, ok := err.(*multierror.Error); ok {
		for _, problem := range merr.Errors {
			presenter.Error(problem, "")
		}
		presenter.Warning(fmt.Sprintf("%d problem(s) found", len(merr.Errors)))
	} else {
		presenter.Error(err, "Validation failed")
	}
	return false
}
