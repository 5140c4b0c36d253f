package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/accountlens/accountlens/internal/browser"
	"github.com/accountlens/accountlens/internal/config"
	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/engine"
	"github.com/accountlens/accountlens/internal/observability"
	"github.com/accountlens/accountlens/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <username>",
	Short: "Search platforms for a username",
	Long:  "Probe the platform catalog for accounts matching a username and report per-platform verdicts with confidence scores",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntSlice("tiers", nil, "Platform tiers to include (1-3, default all)")
	searchCmd.Flags().Int("min-confidence", -1, "Minimum confidence to count a hit (0-100, default from config)")
	searchCmd.Flags().Bool("deep", false, "Also probe the site-definition catalog")
	searchCmd.Flags().String("sites-file", "", "Site-definition JSON file for deep search")
	searchCmd.Flags().String("platforms-file", "", "YAML file overriding/extending the platform catalog")
	searchCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	searchCmd.Flags().Bool("found-only", false, "Only list platforms where the account was found")
}

func runSearch(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if err := validateUsername(username); err != nil {
		return err
	}

	tiers, err := cmd.Flags().GetIntSlice("tiers")
	if err != nil {
		return err
	}
	if err := validateTiers(tiers); err != nil {
		return err
	}

	minConfidence, err := cmd.Flags().GetInt("min-confidence")
	if err != nil {
		return err
	}

	deep, err := cmd.Flags().GetBool("deep")
	if err != nil {
		return err
	}

	sitesFile, err := cmd.Flags().GetString("sites-file")
	if err != nil {
		return err
	}

	platformsFile, err := cmd.Flags().GetString("platforms-file")
	if err != nil {
		return err
	}

	foundOnly, err := cmd.Flags().GetBool("found-only")
	if err != nil {
		return err
	}

	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if minConfidence < 0 {
		minConfidence = cfg.Search.MinConfidence
	}
	if minConfidence > 100 {
		return errors.New("min-confidence must be between 0 and 100")
	}
	if platformsFile == "" {
		platformsFile = cfg.Catalog.PlatformsFile
	}
	if sitesFile == "" {
		sitesFile = cfg.Catalog.SitesFile
	}

	platforms, err := catalog.LoadPlatforms(platformsFile)
	if err != nil {
		return err
	}

	sites := catalog.EmptySites()
	if deep {
		if sitesFile == "" {
			return errors.New("deep search requires a site-definition file (--sites-file or catalog.sites_file)")
		}
		sites, err = catalog.LoadSites(sitesFile)
		if err != nil {
			return err
		}
		observability.CLILogger.Debug("Loaded site definitions",
			zap.String("path", sitesFile),
			zap.Int("sites", sites.Len()))
	}

	renderer := browser.New(cfg.Browser)
	defer renderer.Close() // nolint:errcheck // best-effort cleanup on exit

	orchestrator := &engine.Orchestrator{
		Platforms:    platforms,
		Sites:        sites,
		Renderer:     renderer,
		Client:       &http.Client{},
		Concurrency:  int64(cfg.Search.Concurrency),
		ProbeTimeout: cfg.Search.Timeout,
	}

	ctx := cmd.Context()
	startedAt := time.Now()

	stream := orchestrator.Search(ctx, core.SearchRequest{
		Username:      username,
		Tiers:         tiers,
		MinConfidence: minConfidence,
		DeepSearch:    deep,
	})

	results := make([]*core.VerificationResult, 0)
	for result := range stream {
		results = append(results, result)
	}

	summary := core.Summarize(username, results, minConfidence)
	if foundOnly {
		summary.Results = filterFound(summary.Results, minConfidence)
	}

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatSummary(summary)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Println(rendered)
	}

	if format != output.FormatJSON {
		logThroughput(summary.Checked, startedAt)
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < 1 || len(username) > 64 {
		return errors.New("username must be 1-64 characters")
	}

	matched, err := regexp.MatchString(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`, username)
	if err != nil {
		return fmt.Errorf("username validation failed: %w", err)
	}
	if !matched {
		return errors.New("username must be alphanumeric with optional dots, underscores, or hyphens")
	}

	return nil
}

func validateTiers(tiers []int) error {
	for _, tier := range tiers {
		if tier < 1 || tier > 3 {
			return fmt.Errorf("invalid tier %d: must be 1-3", tier)
		}
	}
	return nil
}

func filterFound(results []*core.VerificationResult, minConfidence int) []*core.VerificationResult {
	filtered := make([]*core.VerificationResult, 0, len(results))
	for _, result := range results {
		if result != nil && result.Found && result.Confidence >= minConfidence {
			filtered = append(filtered, result)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})
	return filtered
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Search throughput",
		zap.Int("probes", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
