package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kiforge/kiforge/internal/diag"
	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/pipeline"
	"github.com/kiforge/kiforge/internal/symbol"
	"github.com/kiforge/kiforge/internal/template"
)

// loadCatalog builds the template library from the embedded catalog plus
// the configured user catalog directory.
func loadCatalog() (*template.Library, error) {
	return template.Load(viper.GetString("templates"))
}

// generationConfig assembles the pipeline configuration from flags,
// config file, and environment.
func generationConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	if v := viper.GetFloat64("grid"); v > 0 {
		cfg.Footprint.GridResolution = v
	}
	if v := viper.GetFloat64("clearance"); v > 0 {
		cfg.Footprint.CourtyardMargin = v
	}
	if v := viper.GetInt("max-pins-per-unit"); v > 0 {
		cfg.Symbol.MaxPinsPerUnit = v
	}
	// Config-file only: pin-number to edge corrections, e.g.
	//   edge-overrides: {"4": bottom}
	if m := viper.GetStringMapString("edge-overrides"); len(m) > 0 {
		cfg.Symbol.EdgeOverrides = make(map[string]symbol.Edge, len(m))
		for pin, edge := range m {
			cfg.Symbol.EdgeOverrides[pin] = symbol.Edge(edge)
		}
	}
	return cfg
}

// resolveTemplate looks up a preset or family, applies the lead-style
// override if one is configured, and validates the result.
func resolveTemplate(nameOrFamily string) (*template.Template, error) {
	lib, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	tpl, err := lib.Resolve(nameOrFamily)
	if err != nil {
		return nil, err
	}
	if style := viper.GetString("lead-style"); style != "" {
		switch s := template.LeadStyle(style); s {
		case template.LeadGullWing, template.LeadJLead, template.LeadNoLead,
			template.LeadBall, template.LeadThroughHole:
			cp := *tpl // presets are shared
			cp.LeadStyle = s
			tpl = &cp
		default:
			return nil, fmt.Errorf("unknown lead style %q", style)
		}
	}
	if violations := template.Validate(tpl); len(violations) > 0 {
		msgs := make([]string, len(violations))
		for i, v := range violations {
			msgs[i] = v.Error()
		}
		return nil, fmt.Errorf("template %q invalid:\n  %s", nameOrFamily, strings.Join(msgs, "\n  "))
	}
	return tpl, nil
}

// preparedJob normalizes a pinout CSV against a template and returns
// the job parked at the review gate, with its warnings printed.
func preparedJob(templateArg, pinsPath string, cfg pipeline.Config) (*pipeline.Job, error) {
	tpl, err := resolveTemplate(templateArg)
	if err != nil {
		return nil, err
	}
	rows, err := pintable.ReadCSV(pinsPath)
	if err != nil {
		return nil, err
	}

	job := pipeline.NewJob()
	if err := job.SetTemplate(tpl); err != nil {
		return nil, err
	}
	diags, err := job.Normalize(rows, cfg)
	if err != nil {
		return nil, err
	}
	printDiagnostics(diags)
	if err := job.BeginReview(); err != nil {
		return nil, err
	}
	return job, nil
}

func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

// outputPath joins the configured output directory with a file name,
// creating the directory if needed.
func outputPath(name string) (string, error) {
	dir := viper.GetString("output")
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// writeFile writes data through a callback into the output directory.
func writeFile(name string, write func(f *os.File) error) (string, error) {
	path, err := outputPath(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
