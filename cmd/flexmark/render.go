package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a Markdown document",
	Long: `Renders one Markdown document to stdout. Reads stdin when the file is omitted or "-".
With --format auto the output is coloured text on a terminal and HTML otherwise.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, logger := setup(cmd)
		formatFlag, _ := cmd.Flags().GetString("format")

		format := flexmark.FormatHTML
		if formatFlag == "auto" {
			if term.IsTerminal(int(os.Stdout.Fd())) {
				format = flexmark.FormatTerm
			}
		} else {
			f, err := flexmark.ParseFormat(formatFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			format = f
		}

		source, err := readSource(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		engine, err := cli.NewEngine(cli.EngineOptions{Config: file, Logger: logger})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		out, err := engine.Render(source, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Render error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	},
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "auto", "Output format: auto, html, term or tree")
}
