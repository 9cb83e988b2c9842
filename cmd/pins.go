package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/pipeline"
)

var pinsCmd = &cobra.Command{
	Use:   "pins <pinout.csv>",
	Short: "Normalize a pinout CSV and print the canonical pin table",
	Args:  cobra.ExactArgs(1),
	RunE:  runPins,
}

func init() {
	pinsCmd.Flags().StringP("template", "t", "", "template or family to check the pin count against")
	rootCmd.AddCommand(pinsCmd)
}

func runPins(cmd *cobra.Command, args []string) error {
	rows, err := pintable.ReadCSV(args[0])
	if err != nil {
		return err
	}

	expected := 0
	if name, _ := cmd.Flags().GetString("template"); name != "" {
		tpl, err := resolveTemplate(name)
		if err != nil {
			return err
		}
		expected = tpl.ExpectedPins()
	}

	cfg := pipeline.DefaultConfig()
	set, diags, err := pintable.Normalize(rows, expected, cfg.Rules)
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIN\tNAME\tTYPE\tGROUP")
	for _, p := range set.Pins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Number, p.Name, p.Type, p.Group)
	}
	return tw.Flush()
}
