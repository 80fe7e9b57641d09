package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/internal/cli"
	"github.com/aretw0/flexmark/pkg/adapters/loam"
)

var buildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Render every Markdown document of a directory",
	Long: `Renders every non-draft Markdown document under <dir> into --out, keeping the directory layout.
A "flexmark" key in a document's front matter overrides the configuration for that document.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, logger := setup(cmd)
		outDir, _ := cmd.Flags().GetString("out")
		formatFlag, _ := cmd.Flags().GetString("format")
		watch, _ := cmd.Flags().GetBool("watch")

		format, err := flexmark.ParseFormat(formatFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		src, err := loam.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		opts := cli.BuildOptions{
			OutDir: outDir,
			Format: format,
			Config: file,
			Logger: logger,
		}

		if watch {
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			cli.PrintSystemMessage(cmd.OutOrStdout(), "Watching '%s', writing to '%s'.", args[0], outDir)
			if err := cli.Watch(ctx, src, opts, 200*time.Millisecond); err != nil {
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
				os.Exit(1)
			}
			cli.PrintSystemMessage(cmd.OutOrStdout(), "Stopped (%v).", ctx.Signal())
			return
		}

		report, err := cli.Build(cmd.Context(), src, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Build error: %v\n", err)
			os.Exit(1)
		}
		cli.PrintSystemMessage(cmd.OutOrStdout(), "Rendered %d documents (%d marks) into '%s'.", report.Documents, report.Marks, outDir)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("out", "o", "dist", "Output directory")
	buildCmd.Flags().StringP("format", "f", "html", "Output format: html, term or tree")
	buildCmd.Flags().BoolP("watch", "w", false, "Rebuild when documents change")
}
