// Package symbol lays out schematic symbols from a normalized pin set.
// Like the footprint generator it is a pure function of its inputs; the
// pipeline runs it concurrently with footprint generation.
package symbol

import "github.com/kiforge/kiforge/internal/pintable"

// Edge is a side of a unit's body rectangle.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// PinGraphic is one drawn pin. X/Y is the connection point (the free
// end of the pin stub); the stub runs inward to the body edge. Units
// are millimetres on the schematic grid, +Y down.
type PinGraphic struct {
	Number string
	Name   string
	Type   pintable.ElectricalType
	Edge   Edge
	X, Y   float64
	Length float64
}

// Unit is one selectable sub-drawing of a multi-part symbol.
type Unit struct {
	Name string
	// Index is the 1-based unit number within the symbol.
	Index  int
	Width  float64
	Height float64
	Pins   []PinGraphic
}

// Symbol is the generated schematic artifact. The units partition the
// input pin set: every pin appears in exactly one unit.
type Symbol struct {
	Name  string
	Units []Unit
}

// PinCount returns the total pins across all units.
func (s *Symbol) PinCount() int {
	n := 0
	for i := range s.Units {
		n += len(s.Units[i].Pins)
	}
	return n
}

// Config carries the layout knobs. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// GridPitch is the schematic grid all pin positions land on.
	GridPitch float64
	// PinLength is the stub from connection point to body edge.
	PinLength float64
	// MaxPinsPerUnit splits a group into multiple units when exceeded.
	MaxPinsPerUnit int
	// MaxPinsPerEdge is the hard cap after splitting; exceeding it is a
	// template or config problem, not a data problem.
	MaxPinsPerEdge int
	MinBodyWidth   float64
	MinBodyHeight  float64
	// EdgeOverrides pins specific pin numbers to an edge, bypassing the
	// type convention. Manual placement corrections live here so they
	// survive regeneration.
	EdgeOverrides map[string]Edge
}

// DefaultConfig returns the standard schematic drafting values.
func DefaultConfig() Config {
	return Config{
		GridPitch:      2.54,
		PinLength:      5.08,
		MaxPinsPerUnit: 48,
		MaxPinsPerEdge: 40,
		MinBodyWidth:   10.16,
		MinBodyHeight:  7.62,
	}
}
