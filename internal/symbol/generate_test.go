package symbol

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kiforge/kiforge/internal/pintable"
)

// mcuPins builds a small controller-ish pin set exercising every edge
// convention.
func mcuPins(t *testing.T) *pintable.PinSet {
	t.Helper()
	return &pintable.PinSet{Pins: []pintable.Pin{
		{Number: "1", Name: "VDD", Type: pintable.TypePower},
		{Number: "2", Name: "CLK", Type: pintable.TypeInput},
		{Number: "3", Name: "RST", Type: pintable.TypeInput},
		{Number: "4", Name: "TX", Type: pintable.TypeOutput},
		{Number: "5", Name: "GPIO0", Type: pintable.TypeBidirectional},
		{Number: "6", Name: "GPIO1", Type: pintable.TypeBidirectional},
		{Number: "7", Name: "NC", Type: pintable.TypeNoConnect},
		{Number: "8", Name: "GND", Type: pintable.TypeGround},
	}}
}

func TestGeneratePartition(t *testing.T) {
	t.Parallel()
	pins := mcuPins(t)
	sym, err := Generate("MCU-8", pins, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	seen := map[string]int{}
	for _, u := range sym.Units {
		for _, g := range u.Pins {
			seen[g.Number]++
		}
	}
	if len(seen) != pins.Len() {
		t.Errorf("units cover %d distinct pins, want %d", len(seen), pins.Len())
	}
	for _, p := range pins.Pins {
		if seen[p.Number] != 1 {
			t.Errorf("pin %s appears %d times across units, want exactly 1", p.Number, seen[p.Number])
		}
	}
}

func TestGenerateEdgeConvention(t *testing.T) {
	t.Parallel()
	sym, err := Generate("MCU-8", mcuPins(t), DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := map[string]Edge{
		"1": EdgeTop,    // power
		"2": EdgeLeft,   // input
		"3": EdgeLeft,   // input
		"4": EdgeRight,  // output
		"5": EdgeLeft,   // bidirectional, first half
		"6": EdgeRight,  // bidirectional, second half
		"7": EdgeBottom, // no-connect
		"8": EdgeBottom, // ground
	}
	for _, u := range sym.Units {
		for _, g := range u.Pins {
			if g.Edge != want[g.Number] {
				t.Errorf("pin %s on %s edge, want %s", g.Number, g.Edge, want[g.Number])
			}
		}
	}
}

func TestGenerateEdgeOverrides(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.EdgeOverrides = map[string]Edge{
		"4": EdgeBottom, // output moved off the right edge
		"5": EdgeTop,    // bidirectional excluded from the split
	}
	sym, err := Generate("MCU-8", mcuPins(t), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got := map[string]Edge{}
	for _, u := range sym.Units {
		for _, g := range u.Pins {
			got[g.Number] = g.Edge
		}
	}
	if got["4"] != EdgeBottom {
		t.Errorf("pin 4 on %s edge, want %s", got["4"], EdgeBottom)
	}
	if got["5"] != EdgeTop {
		t.Errorf("pin 5 on %s edge, want %s", got["5"], EdgeTop)
	}
	// With pin 5 pinned elsewhere, pin 6 is the whole split: first half
	// goes left.
	if got["6"] != EdgeLeft {
		t.Errorf("pin 6 on %s edge, want %s", got["6"], EdgeLeft)
	}
}

func TestGenerateGroupHints(t *testing.T) {
	t.Parallel()
	pins := &pintable.PinSet{Pins: []pintable.Pin{
		{Number: "1", Name: "PA0", Type: pintable.TypeBidirectional, Group: "PORTA"},
		{Number: "2", Name: "PA1", Type: pintable.TypeBidirectional, Group: "PORTA"},
		{Number: "3", Name: "PB0", Type: pintable.TypeBidirectional, Group: "PORTB"},
		{Number: "4", Name: "VCC", Type: pintable.TypePower},
	}}
	sym, err := Generate("PORTS", pins, DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var names []string
	for _, u := range sym.Units {
		names = append(names, u.Name)
	}
	wantNames := []string{"PORTA", "PORTB", "POWER"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("unit names (-want +got):\n%s", diff)
	}
	for i, u := range sym.Units {
		if u.Index != i+1 {
			t.Errorf("unit %s index = %d, want %d", u.Name, u.Index, i+1)
		}
	}
}

func TestGenerateUnitSplit(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxPinsPerUnit = 4

	pins := &pintable.PinSet{}
	for i := 1; i <= 10; i++ {
		pins.Pins = append(pins.Pins, pintable.Pin{
			Number: fmt.Sprintf("%d", i),
			Name:   fmt.Sprintf("IO%d", i),
			Type:   pintable.TypePassive,
		})
	}
	sym, err := Generate("SPLIT", pins, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := len(sym.Units); got != 3 {
		t.Fatalf("unit count = %d, want 3 (4+4+2)", got)
	}
	wantSizes := []int{4, 4, 2}
	for i, u := range sym.Units {
		if len(u.Pins) != wantSizes[i] {
			t.Errorf("unit %s has %d pins, want %d", u.Name, len(u.Pins), wantSizes[i])
		}
		wantName := fmt.Sprintf("PASSIVE_%d", i+1)
		if u.Name != wantName {
			t.Errorf("unit name = %s, want %s", u.Name, wantName)
		}
	}
	// Sequential split preserves input order across the chunks.
	if first := sym.Units[0].Pins[0].Number; first != "1" {
		t.Errorf("first unit starts at pin %s, want 1", first)
	}
	if last := sym.Units[2].Pins[1].Number; last != "10" {
		t.Errorf("last unit ends at pin %s, want 10", last)
	}
}

func TestGenerateSpacing(t *testing.T) {
	t.Parallel()
	pins := &pintable.PinSet{}
	for i := 1; i <= 6; i++ {
		pins.Pins = append(pins.Pins, pintable.Pin{
			Number: fmt.Sprintf("%d", i),
			Name:   fmt.Sprintf("IN%d", i),
			Type:   pintable.TypeInput,
		})
	}
	cfg := DefaultConfig()
	sym, err := Generate("IN6", pins, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	u := sym.Units[0]
	for i := 1; i < len(u.Pins); i++ {
		gap := u.Pins[i].Y - u.Pins[i-1].Y
		if math.Abs(gap-cfg.GridPitch) > 1e-9 {
			t.Errorf("pins %s/%s gap = %g, want %g", u.Pins[i-1].Number, u.Pins[i].Number, gap, cfg.GridPitch)
		}
		if u.Pins[i].X != u.Pins[0].X {
			t.Errorf("pin %s x = %g, want %g", u.Pins[i].Number, u.Pins[i].X, u.Pins[0].X)
		}
	}
	// Body tall enough for the row plus headroom, in whole grid steps.
	if u.Height < 7*cfg.GridPitch-1e-9 {
		t.Errorf("unit height = %g, want at least %g", u.Height, 7*cfg.GridPitch)
	}
	if r := math.Mod(u.Height, cfg.GridPitch); r > 1e-9 && cfg.GridPitch-r > 1e-9 {
		t.Errorf("unit height %g is not a grid multiple", u.Height)
	}
}

func TestGenerateEdgeOverflow(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxPinsPerUnit = 16
	cfg.MaxPinsPerEdge = 8

	pins := &pintable.PinSet{}
	for i := 1; i <= 12; i++ {
		pins.Pins = append(pins.Pins, pintable.Pin{
			Number: fmt.Sprintf("%d", i),
			Name:   fmt.Sprintf("IN%d", i),
			Type:   pintable.TypeInput,
		})
	}
	_, err := Generate("OVER", pins, cfg)
	if !errors.Is(err, ErrEdgeCapacity) {
		t.Fatalf("Generate error = %v, want %v", err, ErrEdgeCapacity)
	}
	var uoe *UnitOverflowError
	if !errors.As(err, &uoe) {
		t.Fatalf("Generate error type = %T, want *UnitOverflowError", err)
	}
	if uoe.Edge != EdgeLeft || uoe.Pins != 12 {
		t.Errorf("overflow = %+v, want 12 pins on left edge", uoe)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()
	a, err := Generate("MCU-8", mcuPins(t), DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate("MCU-8", mcuPins(t), DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated generation differs (-first +second):\n%s", diff)
	}
}
