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
	"github.com/mintuz/claude-plugins/pkg/presenter"
	"github.com/mintuz/claude-plugins/pkg/skills"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect skills in the bundle",
	Long:  `List the skills discovered in the bundle and show an individual skill's metadata and instructions.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered skills",
	Run: func(_ *cobra.Command, _ []string) {
		listSkills()
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Show a skill's metadata and instructions",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showSkill(args[0])
	},
}

func init() {
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}

func newSkillDiscovery() (*skills.Discovery, error) {
	if root := bundleRoot(); root != "." {
		return skills.NewDiscovery(skills.WithSkillDirs(filepath.Join(root, bundle.SkillsDir)))
	}
	return skills.NewDiscovery()
}

func listSkills() {
	discovery, err := newSkillDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	allSkills, err := discovery.DiscoverSkills()
	if err != nil {
		presenter.Error(err, "Failed to discover skills")
		os.Exit(1)
	}

	if len(allSkills) == 0 {
		presenter.Info("No skills found")
		return
	}

	names := make([]string, 0, len(allSkills))
	for name := range allSkills {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, name := range names {
		skill := allSkills[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, truncate(skill.Description, 60))
	}
	tw.Flush()
}

func showSkill(name string) {
	discovery, err := newSkillDiscovery()
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	skill, err := discovery.GetSkill(name)
	if err != nil {
		presenter.Error(err, "Skill not found")
		os.Exit(1)
	}

	presenter.Section(skill.Name)
	fmt.Printf("Directory: %s\n", skill.Directory)
	fmt.Printf("Description: %s\n", skill.Description)
	if len(skill.AllowedTools) > 0 {
		fmt.Printf("Allowed tools: %s\n", strings.Join(skill.AllowedTools, ", "))
	}
	presenter.Separator()
	fmt.Println(skill.Content)
}
