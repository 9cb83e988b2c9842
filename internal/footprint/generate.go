package footprint

import (
	"fmt"

	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/template"
)

// Generate computes the footprint for a template and pin set. The
// placement algorithm is dispatched on the family's shape; the family
// set is closed, so a family outside it is ErrUnsupportedFamily.
//
// Fatal layout problems return a *GeometryConstraintError naming the
// offending pads.
func Generate(tpl *template.Template, pins *pintable.PinSet, cfg Config) (*Footprint, error) {
	fp := &Footprint{Name: tpl.String()}

	padPins := physicalPins(tpl, pins)

	var err error
	switch tpl.Shape() {
	case template.ShapeQuad:
		err = placeQuad(fp, tpl, padPins, cfg)
	case template.ShapeDual:
		err = placeDual(fp, tpl, padPins, cfg)
	case template.ShapeArray:
		err = placeArray(fp, tpl, padPins, cfg)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFamily, tpl.Family)
	}
	if err != nil {
		return nil, err
	}

	if tpl.ThermalPad != nil {
		placeThermal(fp, tpl, cfg)
	}

	if err := checkOverlaps(fp, tpl); err != nil {
		return nil, err
	}
	if err := checkBounds(fp, tpl, cfg); err != nil {
		return nil, err
	}

	drawSilkscreen(fp, tpl, cfg)
	fp.Courtyard = courtyard(fp, tpl, cfg)

	return fp, nil
}

// physicalPins filters the set down to pins that map to a perimeter or
// array pad: no-pad pins and the thermal pad's own pin are handled
// separately.
func physicalPins(tpl *template.Template, pins *pintable.PinSet) []pintable.Pin {
	out := make([]pintable.Pin, 0, pins.Len())
	for _, p := range pins.Pins {
		if p.NoPad {
			continue
		}
		if tpl.ThermalPad != nil && p.Number == tpl.ThermalPad.PinNumber {
			continue
		}
		out = append(out, p)
	}
	return out
}

// placeThermal emits the exposed pad land at the package center.
func placeThermal(fp *Footprint, tpl *template.Template, cfg Config) {
	tp := tpl.ThermalPad
	fp.Pads = append(fp.Pads, Pad{
		Number:  tp.PinNumber,
		Type:    PadSMD,
		Shape:   ShapeRect,
		X:       0,
		Y:       0,
		W:       cfg.snap(tp.Width),
		H:       cfg.snap(tp.Height),
		Layer:   "F.Cu",
		Thermal: true,
	})
}

// checkOverlaps rejects any pair of pads with intersecting copper.
func checkOverlaps(fp *Footprint, tpl *template.Template) error {
	for i := 0; i < len(fp.Pads); i++ {
		for j := i + 1; j < len(fp.Pads); j++ {
			// The thermal land legitimately sits under nothing else; still
			// checked, since a misparameterized EP colliding with perimeter
			// pads is exactly the failure this catches.
			if overlaps(fp.Pads[i].bounds(), fp.Pads[j].bounds()) {
				return &GeometryConstraintError{
					Family:  string(tpl.Family),
					Pads:    []int{i, j},
					Numbers: []string{fp.Pads[i].Number, fp.Pads[j].Number},
					Err:     ErrPadOverlap,
				}
			}
		}
	}
	return nil
}

// checkBounds rejects pads outside the package envelope: lead span (or
// body) plus pad extension and courtyard margin.
func checkBounds(fp *Footprint, tpl *template.Template, cfg Config) error {
	span := tpl.LeadSpan
	if span < tpl.BodyWidth {
		span = tpl.BodyWidth
	}
	halfX := span/2 + cfg.PadExtension + cfg.CourtyardMargin
	spanY := tpl.LeadSpan
	if spanY < tpl.BodyLength {
		spanY = tpl.BodyLength
	}
	halfY := spanY/2 + cfg.PadExtension + cfg.CourtyardMargin
	if tpl.Shape() == template.ShapeArray {
		halfX = tpl.BodyWidth/2 + tpl.BallDiameter + cfg.CourtyardMargin
		halfY = tpl.BodyLength/2 + tpl.BallDiameter + cfg.CourtyardMargin
	}

	for i := range fp.Pads {
		b := fp.Pads[i].bounds()
		if b.MinX < -halfX || b.MaxX > halfX || b.MinY < -halfY || b.MaxY > halfY {
			return &GeometryConstraintError{
				Family:  string(tpl.Family),
				Pads:    []int{i},
				Numbers: []string{fp.Pads[i].Number},
				Err:     ErrOutOfBounds,
			}
		}
	}
	return nil
}

// drawSilkscreen emits the body outline and the pin-1 marker dot.
func drawSilkscreen(fp *Footprint, tpl *template.Template, cfg Config) {
	hw := cfg.snap(tpl.BodyWidth/2 + cfg.SilkMargin)
	hh := cfg.snap(tpl.BodyLength/2 + cfg.SilkMargin)
	w := cfg.SilkLineWidth
	fp.Silkscreen = append(fp.Silkscreen,
		Segment{-hw, -hh, hw, -hh, "F.SilkS", w},
		Segment{hw, -hh, hw, hh, "F.SilkS", w},
		Segment{hw, hh, -hw, hh, "F.SilkS", w},
		Segment{-hw, hh, -hw, -hh, "F.SilkS", w},
	)

	// Pin 1 is at the top-left by construction in every family here:
	// first perimeter position for quad/dual, position A1 (or the first
	// populated ball) for arrays.
	marker := Circle{
		CX:     cfg.snap(-hw - 0.5),
		CY:     cfg.snap(-hh),
		Radius: 0.2,
		Layer:  "F.SilkS",
		Width:  w,
		Fill:   true,
	}
	if len(fp.Pads) > 0 && !fp.Pads[0].Thermal {
		p := fp.Pads[0]
		marker.CX = cfg.snap(p.X - p.W/2 - 0.5)
		marker.CY = cfg.snap(p.Y)
	}
	fp.Markers = append(fp.Markers, marker)
}

// courtyard is the pad/body bounding box expanded by the clearance
// margin, snapped outward-safe to the grid.
func courtyard(fp *Footprint, tpl *template.Template, cfg Config) Rect {
	r := Rect{
		MinX: -tpl.BodyWidth / 2, MaxX: tpl.BodyWidth / 2,
		MinY: -tpl.BodyLength / 2, MaxY: tpl.BodyLength / 2,
	}
	for i := range fp.Pads {
		b := fp.Pads[i].bounds()
		if b.MinX < r.MinX {
			r.MinX = b.MinX
		}
		if b.MinY < r.MinY {
			r.MinY = b.MinY
		}
		if b.MaxX > r.MaxX {
			r.MaxX = b.MaxX
		}
		if b.MaxY > r.MaxY {
			r.MaxY = b.MaxY
		}
	}
	return Rect{
		MinX: cfg.snap(r.MinX - cfg.CourtyardMargin),
		MinY: cfg.snap(r.MinY - cfg.CourtyardMargin),
		MaxX: cfg.snap(r.MaxX + cfg.CourtyardMargin),
		MaxY: cfg.snap(r.MaxY + cfg.CourtyardMargin),
	}
}
