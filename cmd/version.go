package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamscout/handlers"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "streamscout %s\n", handlers.Version())
	},
}
