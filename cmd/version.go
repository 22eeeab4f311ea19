package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/beanboi7/chyp8/cmd.version=...".
var (
	version = "dev"
	commit  = ""
	date    = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chyp8 %s", version)
		if commit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " (%s %s)", commit, date)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	},
}
