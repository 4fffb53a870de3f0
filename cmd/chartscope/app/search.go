package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	chartapp "github.com/chartscope/chartscope/internal/app"
	"github.com/chartscope/chartscope/internal/config"
	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/pkg/logger"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search charts from the command line",
	Long: `Search the configured chart registry and print the results.

The command runs the same lookup pipeline as the search_charts MCP tool,
including caching and result filtering.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

const descriptionColumnWidth = 60

func init() {
	searchCmd.Flags().String("config", "", "Path to configuration file (YAML format)")
	searchCmd.Flags().Int("limit", 0, "Maximum results to return (defaults to the configured page size)")
	searchCmd.Flags().Int("offset", 0, "Number of results to skip")
	searchCmd.Flags().String("format", "", "Output format (json)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfig(config.WithConfigPath(configPath))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	} else {
		cfg = config.Default()
	}
	// A one-shot command needs no operational surface.
	cfg.Server.OpsAddr = ""

	configureLogging(cfg)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	offset, err := cmd.Flags().GetInt("offset")
	if err != nil {
		return err
	}

	chartApp, err := chartapp.New(ctx, chartapp.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer func() {
		if err := chartApp.Stop(defaultGracefulTimeout); err != nil {
			logger.Warnf("Shutdown finished with errors: %v", err)
		}
	}()

	results, err := chartApp.Service().SearchCharts(ctx, args[0], limit, offset)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format == "json" {
		output, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	if len(results.Results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No charts found for %q\n", results.Query)
		return nil
	}

	if err := renderSearchTable(cmd, results); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d results (limit %d, offset %d)\n",
		results.Total, results.Limit, results.Offset)
	return nil
}

func renderSearchTable(cmd *cobra.Command, results *service.SearchResults) error {
	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header("REPOSITORY", "NAME", "VERSION", "APP VERSION", "STARS", "DESCRIPTION")

	for _, r := range results.Results {
		name := r.Name
		if r.Deprecated {
			name += " (deprecated)"
		}
		if err := table.Append(r.Repository, name, r.Version, r.AppVersion,
			strconv.Itoa(r.Stars), truncate(r.Description, descriptionColumnWidth)); err != nil {
			return fmt.Errorf("failed to render results: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return nil
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
