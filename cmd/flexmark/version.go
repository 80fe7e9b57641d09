package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/flexmark"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flexmark",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "flexmark version %s\n", strings.TrimSpace(flexmark.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
