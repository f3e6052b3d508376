package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daedaleanai/xdlrc/config"
	"github.com/daedaleanai/xdlrc/log"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Args:  cobra.NoArgs,
	Short: "Lists the effective configuration",
	Long: `Lists the effective configuration after applying the configuration file,
XDLRC_* environment variables and defaults.`,
	Run: runShowConfig,
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}

// bindFlag makes the flag called name override the config key.
func bindFlag(cmd *cobra.Command, key, name string) {
	if err := config.Viper().BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		log.Fatal("Failed to bind flag '%s': %s.\n", name, err)
	}
}

func runShowConfig(cmd *cobra.Command, args []string) {
	cfg := config.GetConfig()
	if dir, err := config.Dir(); err == nil {
		log.Log("Configuration directory: '%s'\n", dir)
	}
	log.IndentationLevel = 1
	log.Log("%s: %s\n", config.KeyFamily, cfg.Family)
	log.Log("%s: %s\n", config.KeyOutputDir, cfg.OutputDir)
	log.Log("%s: %s\n", config.KeyErrorsFile, cfg.ErrorsFile)
	log.Log("%s: %s\n", config.KeyExceptionsFile, cfg.ExceptionsFile)
	log.Log("%s: %s\n", config.KeyReferenceRepo, cfg.ReferenceRepo)
	log.Log("%s: %s\n", config.KeyReferenceDir, cfg.ReferenceDir)
	log.Log("%s: %s\n", config.KeyReferenceRevision, cfg.ReferenceRevision)
	log.IndentationLevel = 0
}
