package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/accountlens/accountlens/internal/config"
	"github.com/accountlens/accountlens/internal/core/catalog"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the platform catalog",
	Long:  "List the platforms accountlens knows how to probe, including tier and detection method",
	RunE:  runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)

	platformsCmd.Flags().IntSlice("tiers", nil, "Only list these tiers (1-3)")
	platformsCmd.Flags().Bool("all", false, "Include disabled platforms")
	platformsCmd.Flags().String("platforms-file", "", "YAML file overriding/extending the platform catalog")
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	tiers, err := cmd.Flags().GetIntSlice("tiers")
	if err != nil {
		return err
	}
	if err := validateTiers(tiers); err != nil {
		return err
	}

	includeAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	platformsFile, err := cmd.Flags().GetString("platforms-file")
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if platformsFile == "" {
		platformsFile = cfg.Catalog.PlatformsFile
	}

	platforms, err := catalog.LoadPlatforms(platformsFile)
	if err != nil {
		return err
	}

	var listed []catalog.Platform
	if includeAll {
		listed = platforms.All()
	} else {
		listed = platforms.Enabled(tiers)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "Tier", "Category", "Method", "Enabled"})
	for _, p := range listed {
		t.AppendRow(table.Row{p.ID, p.Name, p.Tier, p.Category, string(p.Method), p.Enabled})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", fmt.Sprintf("%d platforms", len(listed))})

	fmt.Println(t.Render())
	return nil
}
