// Package template holds the parametric package family catalog. The
// library is loaded once at process start from an embedded TOML catalog
// (plus an optional user catalog directory) and is read-only afterwards,
// so it may be shared across goroutines without locking.
package template

import "fmt"

// Family identifies a manufacturing package shape category. Each family
// maps to one placement algorithm in the footprint generator.
type Family string

const (
	FamilyQFP  Family = "QFP"
	FamilyLQFP Family = "LQFP"
	FamilyTQFP Family = "TQFP"
	FamilyQFN  Family = "QFN"
	FamilyDFN  Family = "DFN"
	FamilyBGA  Family = "BGA"
	FamilyFBGA Family = "FBGA"
	FamilySOIC Family = "SOIC"
	FamilySSOP Family = "SSOP"
	FamilyTSOP Family = "TSSOP"
	FamilyDIP  Family = "DIP"
)

// Shape classifies how a family distributes its pins.
type Shape string

const (
	// ShapeQuad places pins on all four sides, counter-clockwise from the
	// top of the left side.
	ShapeQuad Shape = "quad"
	// ShapeDual places pins on the left and right sides only.
	ShapeDual Shape = "dual"
	// ShapeArray places balls on a row-letter / column-number grid.
	ShapeArray Shape = "array"
)

// LeadStyle is the physical termination shape of a package pin. It
// selects both the footprint pad treatment and the 3D lead solid.
type LeadStyle string

const (
	LeadGullWing    LeadStyle = "gull_wing"
	LeadJLead       LeadStyle = "j_lead"
	LeadNoLead      LeadStyle = "no_lead"
	LeadBall        LeadStyle = "ball"
	LeadThroughHole LeadStyle = "through_hole"
)

// ThermalPad describes an exposed pad in the package center. The pin
// number is conventionally "EP".
type ThermalPad struct {
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	PinNumber string  `toml:"pin_number"`
}

// Template is the full parameter set for one package. Immutable once
// selected for a job; generators hold a reference, never a copy.
//
// All linear dimensions are millimetres.
type Template struct {
	Family   Family `toml:"family"`
	Name     string `toml:"name"`
	PinCount int    `toml:"pin_count"`

	Pitch      float64 `toml:"pitch"`
	BodyWidth  float64 `toml:"body_width"`
	BodyLength float64 `toml:"body_length"`
	BodyHeight float64 `toml:"body_height"`

	// Leaded families.
	LeadWidth  float64   `toml:"lead_width"`
	LeadLength float64   `toml:"lead_length"`
	LeadSpan   float64   `toml:"lead_span"`
	LeadStyle  LeadStyle `toml:"lead_style"`
	Standoff   float64   `toml:"standoff"`

	// Array families.
	BallDiameter float64  `toml:"ball_diameter"`
	Rows         int      `toml:"rows"`
	Columns      int      `toml:"columns"`
	Depopulated  []string `toml:"depopulated"`

	ThermalPad *ThermalPad `toml:"thermal_pad"`
}

// Shape returns the pin distribution shape for the template's family.
func (t *Template) Shape() Shape {
	switch t.Family {
	case FamilyQFP, FamilyLQFP, FamilyTQFP, FamilyQFN:
		return ShapeQuad
	case FamilyBGA, FamilyFBGA:
		return ShapeArray
	default:
		return ShapeDual
	}
}

// Leadless reports whether the family terminates flush with the body
// (no lead overhang beyond the outline).
func (t *Template) Leadless() bool {
	return t.Family == FamilyQFN || t.Family == FamilyDFN
}

// PerimeterPinCount returns the pin count excluding the thermal pad,
// which occupies no perimeter position.
func (t *Template) PerimeterPinCount() int {
	n := t.PinCount
	if t.ThermalPad != nil {
		n--
	}
	return n
}

// PinsPerSide returns the perimeter pins on each side for quad and dual
// shapes, or 0 for arrays.
func (t *Template) PinsPerSide() int {
	switch t.Shape() {
	case ShapeQuad:
		return t.PerimeterPinCount() / 4
	case ShapeDual:
		return t.PerimeterPinCount() / 2
	default:
		return 0
	}
}

// ExpectedPins returns the pin count a normalized pin table should have:
// populated grid positions for arrays, PinCount otherwise.
func (t *Template) ExpectedPins() int {
	if t.Shape() == ShapeArray {
		return t.Rows*t.Columns - len(t.Depopulated)
	}
	return t.PinCount
}

// String returns the template's display name, falling back to
// "FAMILY-N" when the catalog entry carries no name.
func (t *Template) String() string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("%s-%d", t.Family, t.PinCount)
}
