package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiforge/kiforge/internal/footprint"
	"github.com/kiforge/kiforge/internal/kicad"
	"github.com/kiforge/kiforge/internal/model3d"
)

var modelCmd = &cobra.Command{
	Use:   "model <template> <pinout.csv>",
	Short: "Generate a 3D package model as STL",
	Long: "Generates the footprint first, then builds the 3D model from its pad\n" +
		"geometry so lead positions always match the copper.",
	Args: cobra.ExactArgs(2),
	RunE: runModel,
}

func init() {
	rootCmd.AddCommand(modelCmd)
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg := generationConfig()
	job, err := preparedJob(args[0], args[1], cfg)
	if err != nil {
		return err
	}

	fp, err := footprint.Generate(job.Template(), job.Pins(), cfg.Footprint)
	if err != nil {
		return err
	}
	m, err := model3d.Generate(job.Template(), fp, cfg.Model)
	if err != nil {
		return err
	}

	path, err := writeFile(m.Name+".stl", func(f *os.File) error {
		return kicad.WriteModelSTL(f, m)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d leads)\n", path, len(m.Leads))
	return nil
}
