package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/xdlrc/compare"
	"github.com/daedaleanai/xdlrc/config"
	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/reference"
)

var compareCmd = &cobra.Command{
	Use:   "compare TEST REFERENCE",
	Args:  cobra.ExactArgs(2),
	Short: "Compares a report against a reference report",
	Long: `Compares the report TEST against the report REFERENCE. Differences are
written to the errors file, known acceptable differences to the exceptions file.

If a reference repository is configured, REFERENCE is a path inside that
repository at the configured revision. The command fails if any error was found.`,
	Run: runCompare,
}

var compareTile bool
var comparePrimDefs bool

func init() {
	compareCmd.Flags().BoolVar(&compareTile, "tile", false, "Compare reports holding single tile blocks.")
	compareCmd.Flags().BoolVar(&comparePrimDefs, "prim-defs", false, "Compare reports holding primitive_defs blocks only.")
	compareCmd.Flags().String("errors", "", "File the errors are written to.")
	compareCmd.Flags().String("exceptions", "", "File the exceptions are written to.")
	compareCmd.Flags().String("ref-repo", "", "URL of the git repository holding reference reports.")
	compareCmd.Flags().String("ref-rev", "", "Revision of the reference repository.")
	bindFlag(compareCmd, config.KeyErrorsFile, "errors")
	bindFlag(compareCmd, config.KeyExceptionsFile, "exceptions")
	bindFlag(compareCmd, config.KeyReferenceRepo, "ref-repo")
	bindFlag(compareCmd, config.KeyReferenceRevision, "ref-rev")
	rootCmd.AddCommand(compareCmd)
}

func openReference(cfg config.Config, path string) (io.ReadCloser, error) {
	if cfg.ReferenceRepo == "" {
		return os.Open(path)
	}
	store, err := reference.OpenOrClone(cfg.ReferenceDir, cfg.ReferenceRepo)
	if err != nil {
		return nil, err
	}
	log.Debug("Reading '%s' at '%s' from '%s'.\n", path, cfg.ReferenceRevision, store.Dir())
	return store.Open(cfg.ReferenceRevision, path)
}

func runCompare(cmd *cobra.Command, args []string) {
	if compareTile && comparePrimDefs {
		log.Fatal("--tile cannot be combined with --prim-defs.\n")
	}
	cfg := config.GetConfig()

	test, err := os.Open(args[0])
	if err != nil {
		log.Fatal("Failed to open test report: %s.\n", err)
	}
	defer test.Close()
	ref, err := openReference(cfg, args[1])
	if err != nil {
		log.Fatal("Failed to open reference report: %s.\n", err)
	}
	defer ref.Close()

	errLog, err := os.Create(cfg.ErrorsFile)
	if err != nil {
		log.Fatal("Failed to create '%s': %s.\n", cfg.ErrorsFile, err)
	}
	defer errLog.Close()
	excLog, err := os.Create(cfg.ExceptionsFile)
	if err != nil {
		log.Fatal("Failed to create '%s': %s.\n", cfg.ExceptionsFile, err)
	}
	defer excLog.Close()

	session := compare.NewSession(errLog, excLog, nil)
	compareFn := session.CompareReports
	switch {
	case compareTile:
		compareFn = session.CompareTiles
	case comparePrimDefs:
		compareFn = session.ComparePrimDefs
	}

	log.Log("Comparing '%s' against '%s'.\n", args[0], args[1])
	log.Spinner.Start()
	err = compareFn(compare.Input{Name: args[0], Reader: test}, compare.Input{Name: args[1], Reader: ref})
	log.Spinner.Stop()
	session.Close()
	if err != nil {
		log.Fatal("Failed to compare reports: %s.\n", err)
	}

	log.Log("%d exceptions written to '%s'.\n", session.Exceptions(), cfg.ExceptionsFile)
	if session.Errors() > 0 {
		log.Error("%d errors written to '%s'.\n", session.Errors(), cfg.ErrorsFile)
		errLog.Close()
		excLog.Close()
		os.Exit(1)
	}
	log.Success("Reports match.\n")
}
