package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped by the release build; source builds report the
// module version from build info.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kiforge version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				v = info.Main.Version
			} else {
				v = "dev"
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "kiforge %s\n", v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
