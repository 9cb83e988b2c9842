package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiforge/kiforge/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse the local catalog of generated components",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated components",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a component's generation record",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a component from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	libraryCmd.PersistentFlags().String("db", "", "library database path (default .kiforge.db)")

	libraryListCmd.Flags().String("family", "", "filter by package family")
	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd, libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := library.Open(cmd.Context(), libraryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	family, _ := cmd.Flags().GetString("family")
	records, err := store.List(cmd.Context(), family)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "library is empty")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFAMILY\tPINS\tWARNINGS\tGENERATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			r.Name, r.Family, r.PinCount, r.Warnings, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	store, err := library.Open(cmd.Context(), libraryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Find(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:      %s\n", r.Name)
	fmt.Fprintf(out, "Family:    %s\n", r.Family)
	fmt.Fprintf(out, "Pins:      %d\n", r.PinCount)
	fmt.Fprintf(out, "Footprint: %s\n", r.FootprintPath)
	fmt.Fprintf(out, "Symbol:    %s\n", r.SymbolPath)
	fmt.Fprintf(out, "Model:     %s\n", r.ModelPath)
	fmt.Fprintf(out, "Warnings:  %d\n", r.Warnings)
	fmt.Fprintf(out, "Generated: %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	store, err := library.Open(cmd.Context(), libraryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
	return nil
}
