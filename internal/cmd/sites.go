package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/accountlens/accountlens/internal/config"
	"github.com/accountlens/accountlens/internal/core/catalog"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Inspect a site-definition file",
	Long:  "Load a site-definition JSON file and report what deep search would probe with it",
	RunE:  runSites,
}

func init() {
	rootCmd.AddCommand(sitesCmd)

	sitesCmd.Flags().String("sites-file", "", "Site-definition JSON file")
	sitesCmd.Flags().String("category", "", "Only list sites in this category")
	sitesCmd.Flags().Bool("summary", false, "Only print per-category counts")
}

func runSites(cmd *cobra.Command, args []string) error {
	sitesFile, err := cmd.Flags().GetString("sites-file")
	if err != nil {
		return err
	}

	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}

	summaryOnly, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if sitesFile == "" {
		sitesFile = cfg.Catalog.SitesFile
	}
	if sitesFile == "" {
		return errors.New("a site-definition file is required (--sites-file or catalog.sites_file)")
	}

	sites, err := catalog.LoadSites(sitesFile)
	if err != nil {
		return err
	}

	if summaryOnly {
		counts := make(map[string]int)
		for _, s := range sites.All() {
			counts[s.Category]++
		}
		categories := make([]string, 0, len(counts))
		for cat := range counts {
			categories = append(categories, cat)
		}
		sort.Strings(categories)

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Category", "Sites"})
		for _, cat := range categories {
			t.AppendRow(table.Row{cat, counts[cat]})
		}
		t.AppendFooter(table.Row{"total", sites.Len()})
		fmt.Println(t.Render())
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Exists Code", "Exists String"})
	listed := 0
	for _, s := range sites.All() {
		if category != "" && s.Category != category {
			continue
		}
		t.AppendRow(table.Row{s.ID(), s.Name, s.Category, s.ExistsCode, s.ExistsString})
		listed++
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d sites", listed)})

	fmt.Println(t.Render())
	return nil
}
