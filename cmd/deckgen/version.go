package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/deckgen"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of deckgen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "deckgen version %s\n", strings.TrimSpace(deckgen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
