package cmd

import (
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiforge/kiforge/internal/kicad"
	"github.com/kiforge/kiforge/internal/library"
	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/pipeline"
	"github.com/kiforge/kiforge/internal/tui"
)

var generateCmd = &cobra.Command{
	Use:   "generate <template> <pinout.csv>",
	Short: "Run the full pipeline: footprint, symbol, and 3D model",
	RunE:  runGenerate,
	Args:  cobra.ExactArgs(2),
}

func init() {
	generateCmd.Flags().Bool("review", false, "open the interactive pin-table review before generating")
	generateCmd.Flags().Bool("watch", false, "re-normalize when the pinout file changes, then generate on interrupt")
	generateCmd.Flags().Bool("save", true, "record the component in the local library")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generationConfig()
	job, err := preparedJob(args[0], args[1], cfg)
	if err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if err := watchPinout(cmd, job, args[1], cfg); err != nil {
			return err
		}
	}

	if review, _ := cmd.Flags().GetBool("review"); review {
		model := tui.NewReview(job, cfg)
		final, err := tea.NewProgram(model).Run()
		if err != nil {
			return err
		}
		rm := final.(tui.ReviewModel)
		if rm.Err() != nil {
			return rm.Err()
		}
		if !rm.Done() {
			return nil // user backed out at the gate
		}
	} else {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := job.Generate(ctx, cfg); err != nil {
			return err
		}
	}

	return exportArtifacts(cmd, job)
}

// watchPinout re-normalizes the job on every save of the pinout file
// until the user interrupts, keeping the review gate current with
// external edits.
func watchPinout(cmd *cobra.Command, job *pipeline.Job, pinsPath string, cfg pipeline.Config) error {
	w, err := pipeline.NewWatcher(pinsPath)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s; edit and save to re-normalize, interrupt to continue\n", pinsPath)
	for {
		select {
		case change := <-w.Changes:
			if change.Removed {
				continue
			}
			rows, err := pintable.ReadCSV(pinsPath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "re-read failed: %v\n", err)
				continue
			}
			diags, err := job.Normalize(rows, cfg)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "re-normalize failed: %v\n", err)
				continue
			}
			printDiagnostics(diags)
			if err := job.BeginReview(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "pin table updated: %d pins\n", job.Pins().Len())
		case <-ctx.Done():
			return nil
		}
	}
}

// exportArtifacts writes the three generated files and records the
// component in the library.
func exportArtifacts(cmd *cobra.Command, job *pipeline.Job) error {
	art := job.Artifacts()
	out := cmd.OutOrStdout()

	fpPath, err := writeFile(art.Footprint.Name+".kicad_mod", func(f *os.File) error {
		return kicad.WriteFootprint(f, art.Footprint)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", fpPath)

	symPath, err := writeFile(art.Symbol.Name+".kicad_sym", func(f *os.File) error {
		return kicad.WriteSymbol(f, art.Symbol)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", symPath)

	stlPath, err := writeFile(art.Model.Name+".stl", func(f *os.File) error {
		return kicad.WriteModelSTL(f, art.Model)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", stlPath)

	if save, _ := cmd.Flags().GetBool("save"); !save {
		return nil
	}
	store, err := library.Open(cmd.Context(), libraryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	tpl := job.Template()
	return store.Save(cmd.Context(), library.Record{
		ID:            job.ID.String(),
		Name:          tpl.String(),
		Family:        string(tpl.Family),
		PinCount:      tpl.PinCount,
		FootprintPath: fpPath,
		SymbolPath:    symPath,
		ModelPath:     stlPath,
		Warnings:      len(job.Diagnostics()),
	})
}

// libraryPath is the component database location: flag/config first,
// then a dotfile next to the output.
func libraryPath() string {
	if p := viper.GetString("library"); p != "" {
		return p
	}
	return ".kiforge.db"
}
