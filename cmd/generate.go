package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/xdlrc/config"
	"github.com/daedaleanai/xdlrc/interchange"
	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/resources"
	"github.com/daedaleanai/xdlrc/util"
	"github.com/daedaleanai/xdlrc/xdlrc"
)

var generateCmd = &cobra.Command{
	Use:   "generate DEVICE [FILE]",
	Args:  cobra.RangeArgs(1, 2),
	Short: "Writes the XDL resource report of a device",
	Long: `Writes the XDL resource report of the device described by the interchange
device resources file DEVICE (YAML or JSON, optionally gzip-compressed).

The report is written to FILE, or to <device name>.xdlrc in the output directory.`,
	Run: runGenerate,
}

var generateTile string
var generatePrimDefs bool
var generateExtended bool

func init() {
	generateCmd.Flags().StringVar(&generateTile, "tile", "", "Only write the block of this tile.")
	generateCmd.Flags().BoolVar(&generatePrimDefs, "prim-defs", false, "Only write the primitive_defs block.")
	generateCmd.Flags().BoolVar(&generateExtended, "extra", false, "Also list the alternate site types of every site type.")
	generateCmd.Flags().String("family", "", "Device family written to the report header.")
	generateCmd.Flags().String("output-dir", "", "Directory the report is written to.")
	bindFlag(generateCmd, config.KeyFamily, "family")
	bindFlag(generateCmd, config.KeyOutputDir, "output-dir")
	rootCmd.AddCommand(generateCmd)
}

func reportPath(cfg config.Config, res *resources.Resources, args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	name := xdlrc.FileName(res)
	switch {
	case generateTile != "":
		name = res.Device.Name + "_" + generateTile + xdlrc.FileExtension
	case generatePrimDefs:
		name = res.Device.Name + "_prim_defs" + xdlrc.FileExtension
	}
	return filepath.Join(cfg.OutputDir, name)
}

func runGenerate(cmd *cobra.Command, args []string) {
	if generateTile != "" && (generatePrimDefs || generateExtended) {
		log.Fatal("--tile cannot be combined with --prim-defs or --extra.\n")
	}
	if generatePrimDefs && generateExtended {
		log.Fatal("--prim-defs cannot be combined with --extra.\n")
	}
	cfg := config.GetConfig()

	log.Log("Loading device '%s'.\n", args[0])
	log.Spinner.Start()
	dev, err := interchange.Load(args[0])
	if err != nil {
		log.Spinner.Stop()
		log.Fatal("Failed to load device: %s.\n", err)
	}
	res, err := resources.New(dev)
	log.Spinner.Stop()
	if err != nil {
		log.Fatal("Failed to index device: %s.\n", err)
	}

	path := reportPath(cfg, res, args)
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		log.Fatal("Failed to create output directory: %s.\n", err)
	}
	file, err := os.Create(path)
	if err != nil {
		log.Fatal("Failed to create '%s': %s.\n", path, err)
	}
	defer file.Close()

	log.Log("Writing '%s'.\n", path)
	gen := xdlrc.New(res, file, cfg.Family)
	log.Spinner.Start()
	switch {
	case generateTile != "":
		var summary xdlrc.TileSummary
		summary, err = gen.GenerateTile(generateTile)
		if err == nil {
			log.Debug("Tile '%s': %d sites, %d pinwires, %d wires, %d pips.\n",
				generateTile, summary.Sites, summary.Pinwires, summary.Wires, summary.Pips)
		}
	case generatePrimDefs:
		var n int
		n, err = gen.GeneratePrimDefs()
		if err == nil {
			log.Debug("%d primitive definitions.\n", n)
		}
	default:
		var summary xdlrc.Summary
		if generateExtended {
			summary, err = gen.GenerateExtended()
		} else {
			summary, err = gen.Generate()
		}
		if err == nil {
			log.Debug("%d tiles, %d sites, %d site types, %d pins, %d pips.\n",
				summary.Tiles, summary.Sites, summary.SiteDefs, summary.NumPins, summary.NumPips)
		}
	}
	log.Spinner.Stop()

	if err != nil {
		file.Close()
		os.Remove(path)
		log.Fatal("Failed to generate report: %s.\n", err)
	}
	log.Success("Wrote '%s'.\n", path)
}
