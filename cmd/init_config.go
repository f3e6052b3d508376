package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daedaleanai/xdlrc/config"
	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/util"
)

var forceInit bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [PATH]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Writes a configuration file",
	Long: `Writes the current configuration to PATH, or to config.yaml in the
configuration directory.`,
	Run: runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file.")
	rootCmd.AddCommand(initConfigCmd)
}

func runInitConfig(cmd *cobra.Command, args []string) {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			log.Fatal("%s.\n", err)
		}
	}

	if util.FileExists(path) && !forceInit {
		log.Error("Configuration file '%s' already exists. Use --force to overwrite it.\n", path)
		return
	}
	if err := config.Save(path, config.GetConfig()); err != nil {
		log.Fatal("Failed to write configuration: %s.\n", err)
	}
	log.Success("Wrote configuration to '%s'.\n", path)
}
