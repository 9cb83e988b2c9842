package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiforge/kiforge/internal/kicad"
	"github.com/kiforge/kiforge/internal/symbol"
)

var symbolCmd = &cobra.Command{
	Use:   "symbol <template> <pinout.csv>",
	Short: "Generate a .kicad_sym schematic symbol",
	Args:  cobra.ExactArgs(2),
	RunE:  runSymbol,
}

func init() {
	rootCmd.AddCommand(symbolCmd)
}

func runSymbol(cmd *cobra.Command, args []string) error {
	cfg := generationConfig()
	job, err := preparedJob(args[0], args[1], cfg)
	if err != nil {
		return err
	}

	sym, err := symbol.Generate(job.Template().String(), job.Pins(), cfg.Symbol)
	if err != nil {
		return err
	}

	path, err := writeFile(sym.Name+".kicad_sym", func(f *os.File) error {
		return kicad.WriteSymbol(f, sym)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d units, %d pins)\n", path, len(sym.Units), sym.PinCount())
	return nil
}
