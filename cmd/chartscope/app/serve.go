package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chartapp "github.com/chartscope/chartscope/internal/app"
	"github.com/chartscope/chartscope/internal/config"
	"github.com/chartscope/chartscope/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the ChartScope MCP server.

The server speaks the Model Context Protocol over stdin and stdout, so it
is meant to be launched by an MCP client. All logging goes to stderr.

Without --config the server runs with built-in defaults: the public
Artifact Hub API and an in-memory cache. See the examples/ directory for
sample configurations.`,
	RunE: runServe,
}

const defaultGracefulTimeout = 30 * time.Second

func init() {
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format)")
	serveCmd.Flags().String("ops-address", "", "Listen address for the operational HTTP server (overrides config)")

	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}
	if err := viper.BindPFlag("ops-address", serveCmd.Flags().Lookup("ops-address")); err != nil {
		logger.Fatalf("Failed to bind ops-address flag: %v", err)
	}
}

func loadServeConfig() (*config.Config, error) {
	var cfg *config.Config
	if configPath := viper.GetString("config"); configPath != "" {
		var err error
		cfg, err = config.LoadConfig(config.WithConfigPath(configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Infof("Loaded configuration from %s", configPath)
	} else {
		cfg = config.Default()
		logger.Info("No configuration file provided, using defaults")
	}

	if addr := viper.GetString("ops-address"); addr != "" {
		cfg.Server.OpsAddr = addr
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}
	configureLogging(cfg)

	chartApp, err := chartapp.New(ctx, chartapp.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	logger.Infof("Starting ChartScope MCP server (registry: %s, cache: %s)",
		cfg.Registry.BaseURL, cfg.Cache.Backend)

	errCh := make(chan error, 1)
	go func() {
		errCh <- chartApp.Start()
	}()

	// Wait for an interrupt or for the server to exit on its own, which
	// happens when the MCP client closes the stdio stream.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Infof("Received signal %s, shutting down", sig)
	case runErr = <-errCh:
		if runErr == nil {
			logger.Info("MCP client disconnected, shutting down")
		}
	}

	if err := chartApp.Stop(defaultGracefulTimeout); err != nil {
		logger.Errorf("Shutdown finished with errors: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return fmt.Errorf("server exited: %w", runErr)
	}

	logger.Info("Shutdown complete")
	return nil
}
