package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List package families and catalog presets",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	lib, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Families:")
	for _, f := range lib.Families() {
		fmt.Fprintf(out, "  %s\n", f)
	}

	fmt.Fprintln(out, "\nPresets:")
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	for _, name := range lib.Presets() {
		tpl, err := lib.Preset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d pins\t%gx%gmm\tpitch %gmm\n",
			name, tpl.Family, tpl.PinCount, tpl.BodyWidth, tpl.BodyLength, tpl.Pitch)
	}
	return tw.Flush()
}
