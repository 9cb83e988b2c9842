package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// writePinout drops a SOIC-8 pinout CSV into a temp dir.
func writePinout(t *testing.T) string {
	t.Helper()
	csv := `pin,name,type
1,VCC,pwr
2,IN+,i
3,IN-,i
4,GND,gnd
5,NC,nc
6,OUT,o
7,NC,nc
8,VEE,pwr
`
	path := filepath.Join(t.TempDir(), "pinout.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCommand executes the root command with args against a temp output
// directory and returns stdout plus the directory.
func runCommand(t *testing.T, args ...string) (string, string) {
	t.Helper()
	outDir := t.TempDir()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs(append(args, "--output", outDir))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("kiforge %s: %v", strings.Join(args, " "), err)
	}
	return stdout.String(), outDir
}

func TestFootprintCommand(t *testing.T) {
	pins := writePinout(t)
	out, dir := runCommand(t, "footprint", "SOIC-8_3.9x4.9mm_P1.27mm", pins)

	if !strings.Contains(out, "8 pads") {
		t.Errorf("output = %q, want pad count", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "SOIC-8_3.9x4.9mm_P1.27mm.kicad_mod"))
	if err != nil {
		t.Fatalf("reading exported footprint: %v", err)
	}
	if !strings.Contains(string(data), `(pad "1" smd roundrect`) {
		t.Error("exported footprint missing pad 1")
	}
}

func TestSymbolCommand(t *testing.T) {
	pins := writePinout(t)
	_, dir := runCommand(t, "symbol", "SOIC-8_3.9x4.9mm_P1.27mm", pins)

	data, err := os.ReadFile(filepath.Join(dir, "SOIC-8_3.9x4.9mm_P1.27mm.kicad_sym"))
	if err != nil {
		t.Fatalf("reading exported symbol: %v", err)
	}
	for _, want := range []string{"kicad_symbol_lib", `(pin power_in line`, `(pin no_connect line`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("exported symbol missing %q", want)
		}
	}
}

func TestGenerateCommandProducesAllArtifacts(t *testing.T) {
	pins := writePinout(t)
	out, dir := runCommand(t, "generate", "SOIC-8_3.9x4.9mm_P1.27mm", pins, "--save=false")

	for _, suffix := range []string{".kicad_mod", ".kicad_sym", ".stl"} {
		name := "SOIC-8_3.9x4.9mm_P1.27mm" + suffix
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("output does not mention %s", name)
		}
	}
}

func TestTemplatesCommand(t *testing.T) {
	out, _ := runCommand(t, "templates")
	for _, want := range []string{"Families:", "QFP", "BGA", "SOIC-8_3.9x4.9mm_P1.27mm"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPinsCommandFlagsUnknownTypes(t *testing.T) {
	csv := "pin,name\n1,MYSTERY7\n2,GND\n"
	path := filepath.Join(t.TempDir(), "odd.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _ := runCommand(t, "pins", path)
	if !strings.Contains(out, "unknown") {
		t.Errorf("output = %q, want unknown type flagged", out)
	}
	if !strings.Contains(out, "ground") {
		t.Errorf("output = %q, want GND inferred as ground", out)
	}
}
