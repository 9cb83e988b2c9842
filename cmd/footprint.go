package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiforge/kiforge/internal/footprint"
	"github.com/kiforge/kiforge/internal/kicad"
)

var footprintCmd = &cobra.Command{
	Use:   "footprint <template> <pinout.csv>",
	Short: "Generate a .kicad_mod footprint",
	Args:  cobra.ExactArgs(2),
	RunE:  runFootprint,
}

func init() {
	rootCmd.AddCommand(footprintCmd)
}

func runFootprint(cmd *cobra.Command, args []string) error {
	cfg := generationConfig()
	job, err := preparedJob(args[0], args[1], cfg)
	if err != nil {
		return err
	}

	fp, err := footprint.Generate(job.Template(), job.Pins(), cfg.Footprint)
	if err != nil {
		return err
	}

	path, err := writeFile(fp.Name+".kicad_mod", func(f *os.File) error {
		return kicad.WriteFootprint(f, fp)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pads)\n", path, len(fp.Pads))
	return nil
}
