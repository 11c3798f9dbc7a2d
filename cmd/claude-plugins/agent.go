package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mintuz/claude-plugins/pkg/agents"
	"github.com/mintuz/claude-plugins/pkg/bundle"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Inspect agents in the bundle",
	Long:  `List the agents discovered in the bundle and show an individual agent's metadata and system prompt.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered agents",
	Run: func(cmd *cobra.Command, _ []string) {
		listAgents(cmd)
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show <agent-name>",
	Short: "Show an agent's metadata and system prompt",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showAgent(cmd, args[0])
	},
}

func init() {
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentShowCmd)
}

func newAgentProcessor() (*agents.Processor, error) {
	if root := bundleRoot(); root != "." {
		return agents.NewProcessor(agents.WithAgentDirs(filepath.Join(root, bundle.AgentsDir)))
	}
	return agents.NewProcessor()
}

func listAgents(cmd *cobra.Command) {
	processor, err := newAgentProcessor()
	if err != nil {
		presenter.Error(err, "Failed to initialize agent discovery")
		os.Exit(1)
	}

	allAgents, err := processor.ListAgents(cmd.Context())
	if err != nil {
		presenter.Error(err, "Failed to discover agents")
		os.Exit(1)
	}

	if len(allAgents) == 0 {
		presenter.Info("No agents found")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODEL\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t-----\t-----------")

	for _, agent := range allAgents {
		model := agent.Model
		if model == "" {
			model = "inherit"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", agent.Name, model, truncate(agent.Description, 60))
	}
	tw.Flush()
}

func showAgent(cmd *cobra.Command, name string) {
	processor, err := newAgentProcessor()
	if err != nil {
		presenter.Error(err, "Failed to initialize agent discovery")
		os.Exit(1)
	}

	agent, err := processor.LoadAgent(cmd.Context(), name)
	if err != nil {
		presenter.Error(err, "Agent not found")
		os.Exit(1)
	}

	presenter.Section(agent.Name)
	fmt.Printf("Path: %s\n", agent.Path)
	fmt.Printf("Description: %s\n", agent.Description)
	if agent.Model != "" {
		fmt.Printf("Model: %s\n", agent.Model)
	}
	if len(agent.Tools) > 0 {
		fmt.Printf("Tools: %s\n", strings.Join(agent.Tools, ", "))
	}
	presenter.Separator()
	fmt.Println(agent.SystemPrompt)
}
