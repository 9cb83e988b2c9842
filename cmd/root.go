package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "kiforge",
	Short: "Parametric KiCad component generator",
	Long: "Kiforge turns a package template and a pin table into a matched set of\n" +
		"KiCad artifacts: footprint, schematic symbol, and 3D model.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .kiforge.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", ".", "output directory for generated files")
	rootCmd.PersistentFlags().Float64("grid", 0.01, "coordinate grid resolution in mm")
	rootCmd.PersistentFlags().Float64("clearance", 0.25, "courtyard clearance margin in mm")
	rootCmd.PersistentFlags().Int("max-pins-per-unit", 48, "split symbol units above this pin count")
	rootCmd.PersistentFlags().String("templates", "", "extra template catalog directory")
	rootCmd.PersistentFlags().String("lead-style", "", "override the template's lead style (gull_wing, j_lead, no_lead, ball, through_hole)")
}

// initConfig runs before every command, so flag bindings survive a
// fresh viper instance.
func initConfig() {
	for _, key := range []string{"output", "grid", "clearance", "max-pins-per-unit", "templates", "lead-style"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
	_ = viper.BindPFlag("library", libraryCmd.PersistentFlags().Lookup("db"))

	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".kiforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("KIFORGE")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
