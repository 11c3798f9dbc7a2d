package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mintuz/claude-plugins/pkg/bundle"
	"github.com/mintuz/claude-plugins/pkg/commands"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Inspect slash commands in the bundle",
	Long:  `List the slash commands discovered in the bundle and show an individual command's metadata and prompt template.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var commandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered commands",
	Run: func(_ *cobra.Command, _ []string) {
		listCommands()
	},
}

var commandShowCmd = &cobra.Command{
	Use:   "show <command-name>",
	Short: "Show a command's metadata and prompt template",
	Long: `Show a command's metadata and prompt template. Namespaced commands use
colon-separated names derived from their path, e.g. "git:commit" for
commands/git/commit.md.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showCommand(args[0])
	},
}

func init() {
	commandCmd.AddCommand(commandListCmd)
	commandCmd.AddCommand(commandShowCmd)
}

func newCommandDiscovery() (*commands.Discovery, error) {
	if root := bundleRoot(); root != "." {
		return commands.NewDiscovery(commands.WithCommandDirs(filepath.Join(root, bundle.CommandsDir)))
	}
	return commands.NewDiscovery()
}

func listCommands() {
	discovery, err := newCommandDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize command discovery")
		os.Exit(1)
	}

	allCommands, err := discovery.DiscoverCommands()
	if err != nil {
		presenter.Error(err, "Failed to discover commands")
		os.Exit(1)
	}

	if len(allCommands) == 0 {
		presenter.Info("No commands found")
		return
	}

	names := make([]string, 0, len(allCommands))
	for name := range allCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tARGUMENTS\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, name := range names {
		command := allCommands[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", command.Name, command.ArgumentHint, truncate(command.Description, 60))
	}
	tw.Flush()
}

func showCommand(name string) {
	discovery, err := newCommandDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize command discovery")
		os.Exit(1)
	}

	command, err := discovery.GetCommand(name)
	if err != nil {
		presenter.Error(err, "Command not found")
		os.Exit(1)
	}

	presenter.Section(command.Name)
	fmt.Printf("Path: %s\n", command.Path)
	if command.Description != "" {
		fmt.Printf("Description: %s\n", command.Description)
	}
	if command.ArgumentHint != "" {
		fmt.Printf("Arguments: %s\n", command.ArgumentHint)
	}
	if len(command.AllowedTools) > 0 {
		fmt.Printf("Allowed tools: %s\n", strings.Join(command.AllowedTools, ", "))
	}
	presenter.Separator()
	fmt.Println(command.Content)
}
