package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/xdlrc/log"
)

var rootCmd = &cobra.Command{
	Use:   "xdlrc",
	Short: "Generates and compares XDL resource reports",
	Long: `xdlrc writes the XDL resource report (XDLRC) of a device described by an
interchange device resources file, and compares reports against a reference.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
