package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/flexmark/internal/cli"
	"github.com/aretw0/flexmark/internal/presentation/tui"
	"github.com/aretw0/flexmark/pkg/render/term"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the classification letters and their colours",
	Run: func(cmd *cobra.Command, args []string) {
		file, logger := setup(cmd)

		engine, err := cli.NewEngine(cli.EngineOptions{Config: file, Logger: logger})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		profile := termenv.NewOutput(cmd.OutOrStdout()).Profile
		tui.PrintDictionary(cmd.OutOrStdout(), profile, engine.Config().Dictionary(), term.DefaultPalette())
	},
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}
