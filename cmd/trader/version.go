package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickgao/emoji-trader/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "trader %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
