package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/flexmark/internal/cli"
	"github.com/aretw0/flexmark/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "flexmark",
	Short: "flexmark renders Markdown with highlighted mark spans",
	Long: `flexmark turns ==text== and =r=text== spans in Markdown into highlighted marks.
The letter between the leading equals signs selects a colour from the dictionary.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
}

// setup reads the persistent flags shared by every command.
func setup(cmd *cobra.Command) (*config.File, *slog.Logger) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := cli.NewLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path, _ := cmd.Flags().GetString("config")
	file, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if path != "" {
		logger.Debug("configuration loaded", "path", path)
	}
	return file, logger
}
