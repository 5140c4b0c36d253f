package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/accountlens/accountlens/internal/browser"
	"github.com/accountlens/accountlens/internal/config"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/engine"
	"github.com/accountlens/accountlens/internal/observability"
	"github.com/accountlens/accountlens/internal/server"
	"github.com/accountlens/accountlens/internal/server/handlers"
)

var (
	serverPort int
	serverHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit

Shutdown cleanly stops the HTTP server, closes the shared browser, and
flushes logs.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	logLevel := viper.GetString("logging.level")
	observability.InitServerLogger(appName, logLevel)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	platforms, err := catalog.LoadPlatforms(cfg.Catalog.PlatformsFile)
	if err != nil {
		return err
	}

	sites := catalog.EmptySites()
	if cfg.Catalog.SitesFile != "" {
		sites, err = catalog.LoadSites(cfg.Catalog.SitesFile)
		if err != nil {
			return err
		}
	}

	renderer := browser.New(cfg.Browser)

	orchestrator := &engine.Orchestrator{
		Platforms:    platforms,
		Sites:        sites,
		Renderer:     renderer,
		Client:       &http.Client{},
		Concurrency:  int64(cfg.Search.Concurrency),
		ProbeTimeout: cfg.Search.Timeout,
	}

	api := &handlers.API{
		Engine:        orchestrator,
		Platforms:     platforms,
		MinConfidence: cfg.Search.MinConfidence,
	}

	observability.ServerLogger.Info("Initializing server",
		zap.String("service", appName),
		zap.String("version", versionInfo.Version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("platforms", platforms.EnabledCount()),
		zap.Int("sites", sites.Len()))

	srv := server.New(cfg.Server.Host, cfg.Server.Port, api)

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	// Shutdown handlers run LIFO: the HTTP server stops first, then the
	// browser, then logs flush.
	signals.OnShutdown(func(ctx context.Context) error {
		observability.ServerLogger.Info("Flushing logger...")
		if err := observability.ServerLogger.Sync(); err != nil {
			// Sync errors are often benign (stdout/stderr already closed)
			observability.ServerLogger.Warn("Logger sync returned error (may be benign)",
				zap.Error(err))
		}
		return nil
	})

	signals.OnShutdown(func(ctx context.Context) error {
		observability.ServerLogger.Info("Closing shared browser...")
		if err := renderer.Close(); err != nil {
			observability.ServerLogger.Warn("Browser close returned error", zap.Error(err))
		}
		return nil
	})

	signals.OnShutdown(func(ctx context.Context) error {
		observability.ServerLogger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		observability.ServerLogger.Info("HTTP server stopped gracefully")
		return nil
	})

	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		observability.ServerLogger.Warn("Failed to enable double-tap force quit",
			zap.Error(err))
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	go func() {
		if err := signals.Listen(cmd.Context()); err != nil {
			observability.ServerLogger.Error("Signal handler error", zap.Error(err))
			errChan <- err
		}
	}()

	if err := <-errChan; err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
