package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set with -ldflags "-X github.com/vine-io/flowlayout/cmd/flowlayout/commands.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "flowlayout", version)
	},
}

func init() {
	AddCommand(versionCmd)
}
