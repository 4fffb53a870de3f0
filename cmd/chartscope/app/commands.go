// Package app provides the ChartScope command line interface.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chartscope/chartscope/internal/config"
	"github.com/chartscope/chartscope/pkg/logger"
	"github.com/chartscope/chartscope/pkg/versions"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// CHARTSCOPE_CONFIG and CHARTSCOPE_OPS_ADDRESS.
const EnvPrefix = "CHARTSCOPE"

var rootCmd = &cobra.Command{
	Use:               "chartscope",
	DisableAutoGenTag: true,
	Short:             "MCP server for Helm chart discovery",
	Long: `ChartScope exposes read-only Helm chart discovery tools over the Model
Context Protocol: chart READMEs with usage examples, chart metadata, and
chart search against an Artifact Hub compatible registry.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates the root command for the ChartScope CLI.
func NewRootCmd() *cobra.Command {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// configureLogging applies the logging settings. Precedence is the debug
// flag, then the CHARTSCOPE_* environment variables, then the config file.
func configureLogging(cfg *config.Config) {
	var opts []logger.Option
	if os.Getenv("CHARTSCOPE_LOG_LEVEL") == "" {
		opts = append(opts, logger.WithLevel(cfg.Log.Level))
	}
	if os.Getenv("CHARTSCOPE_UNSTRUCTURED_LOGS") == "" {
		opts = append(opts, logger.WithUnstructured(cfg.Log.Unstructured))
	}
	if viper.GetBool("debug") {
		opts = append(opts, logger.WithLevel("debug"))
	}
	logger.Initialize(opts...)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		info := versions.GetVersionInfo()
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			logger.Errorf("Error retrieving format flag: %v", err)
			return
		}

		if format == "json" {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				logger.Errorf("Error formatting version info as JSON: %v", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "chartscope %s (commit %s, built %s, %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "", "Output format (json)")
}
