package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mintuz/claude-plugins/pkg/marketplace"
	"github.com/mintuz/claude-plugins/pkg/presenter"
)

var marketplaceCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Manage the marketplace manifest",
	Long: `Generate the host-format marketplace manifest from marketplace.yaml, or
show the catalog it describes.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var marketplaceGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate .claude-plugin/marketplace.json from marketplace.yaml",
	Run: func(_ *cobra.Command, _ []string) {
		generateMarketplace()
	},
}

var marketplaceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the marketplace catalog",
	Run: func(_ *cobra.Command, _ []string) {
		showMarketplace()
	},
}

func init() {
	marketplaceCmd.AddCommand(marketplaceGenerateCmd)
	marketplaceCmd.AddCommand(marketplaceShowCmd)
}

func loadManifestOrExit() *marketplace.Manifest {
	manifest, err := marketplace.Load(bundleRoot())
	if err != nil {
		presenter.Error(err, "Failed to load marketplace manifest")
		os.Exit(1)
	}
	return manifest
}

func generateMarketplace() {
	root := bundleRoot()
	manifest := loadManifestOrExit()

	if err := manifest.Validate(root); err != nil {
		presenter.Error(err, "Invalid marketplace manifest")
		os.Exit(1)
	}

	path, err := manifest.WriteHostManifest(root)
	if err != nil {
		presenter.Error(err, "Failed to write host manifest")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Wrote %s", path))
}

func showMarketplace() {
	manifest := loadManifestOrExit()

	presenter.Section(manifest.Name)
	fmt.Printf("Owner: %s <%s>\n", manifest.Owner.Name, manifest.Owner.Email)
	presenter.Separator()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLUGIN\tVERSION\tSOURCE\tDESCRIPTION")
	fmt.Fprintln(tw, "------\t-------\t------\t-----------")

	for _, plugin := range manifest.Plugins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", plugin.Name, plugin.Version, plugin.Source, truncate(plugin.Description, 60))
	}
	tw.Flush()
}
