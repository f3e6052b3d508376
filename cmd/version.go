package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/xdlrc/util"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Prints the version of this tool",
	Long:  `Prints the version of this tool and of the report format it writes.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("xdlrc %s (report format %s)\n", util.ToolVersion, util.ReportFormatVersion)
}
