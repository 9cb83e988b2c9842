// Package footprint computes 2D pad and silkscreen geometry from a
// package template and a normalized pin set. Generation is a pure
// function of its inputs: identical template, pins, and config always
// produce byte-identical geometry, which the pipeline relies on for
// safe re-entry after cancellation.
package footprint

import "math"

// PadShape is the outline drawn for a pad.
type PadShape string

const (
	ShapeRect      PadShape = "rect"
	ShapeRoundRect PadShape = "roundrect"
	ShapeCircle    PadShape = "circle"
)

// PadType distinguishes surface pads from drilled ones.
type PadType string

const (
	PadSMD      PadType = "smd"
	PadThruHole PadType = "thru_hole"
)

// Pad is one copper land. X/Y is the pad center in the footprint's
// local frame (origin at package center, millimetres, +Y down per the
// KiCad convention the original files use).
type Pad struct {
	Number  string
	Type    PadType
	Shape   PadShape
	X, Y    float64
	W, H    float64
	Drill   float64 // 0 for SMD
	Layer   string
	Thermal bool // exposed thermal pad / heatsink via
}

// Segment is one silkscreen or courtyard line.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Layer          string
	Width          float64
}

// Circle is a filled or outline circle (pin-1 marker).
type Circle struct {
	CX, CY float64
	Radius float64
	Layer  string
	Width  float64
	Fill   bool
}

// Rect is an axis-aligned rectangle given by its corners.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the rectangle's X extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle's Y extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Footprint is the generated 2D artifact.
type Footprint struct {
	Name       string
	Pads       []Pad
	Silkscreen []Segment
	Markers    []Circle
	Courtyard  Rect
}

// PadByNumber returns the first pad with the given number, or nil.
// Thermal via pads share the thermal pad's number; the main pad is
// emitted first, so this returns the land itself.
func (f *Footprint) PadByNumber(number string) *Pad {
	for i := range f.Pads {
		if f.Pads[i].Number == number {
			return &f.Pads[i]
		}
	}
	return nil
}

// Config carries the generation knobs exposed to the front-end. The
// zero value is not usable; start from DefaultConfig.
type Config struct {
	// GridResolution snaps every computed coordinate, keeping
	// sub-resolution float noise out of the output. Millimetres.
	GridResolution float64
	// CourtyardMargin expands the pad/body bounding box to form the
	// courtyard.
	CourtyardMargin    float64
	CourtyardLineWidth float64
	SilkLineWidth      float64
	// SilkMargin keeps silkscreen clear of pad copper.
	SilkMargin float64
	// PadWidthRatio sizes perimeter pad width as a fraction of pitch.
	PadWidthRatio float64
	// PadExtension lengthens leaded pads beyond the lead tip.
	PadExtension float64
}

// DefaultConfig returns the standard drafting values (IPC-ish, matching
// the catalog's intent).
func DefaultConfig() Config {
	return Config{
		GridResolution:     0.01,
		CourtyardMargin:    0.25,
		CourtyardLineWidth: 0.05,
		SilkLineWidth:      0.12,
		SilkMargin:         0.15,
		PadWidthRatio:      0.55,
		PadExtension:       0.5,
	}
}

// snap rounds v to the config's grid resolution. Snapping happens at
// placement time so that overlap checks see the same numbers the
// output carries.
func (c Config) snap(v float64) float64 {
	if c.GridResolution <= 0 {
		return v
	}
	return math.Round(v/c.GridResolution) * c.GridResolution
}

// bounds returns the pad's axis-aligned extent.
func (p *Pad) bounds() Rect {
	return Rect{
		MinX: p.X - p.W/2, MinY: p.Y - p.H/2,
		MaxX: p.X + p.W/2, MaxY: p.Y + p.H/2,
	}
}

// overlaps reports whether two rectangles intersect with positive area.
// Shared edges (distance exactly zero) do not count; pitch-adjacent
// pads may touch the same grid line after snapping.
func overlaps(a, b Rect) bool {
	const eps = 1e-9
	return a.MinX < b.MaxX-eps && b.MinX < a.MaxX-eps &&
		a.MinY < b.MaxY-eps && b.MinY < a.MaxY-eps
}
