package footprint

import (
	"fmt"

	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/template"
)

// placeQuad distributes pads on all four sides, counter-clockwise from
// the top of the left side, matching industry pin-1 convention:
//
//	side 1 (left):   top to bottom
//	side 2 (bottom): left to right
//	side 3 (right):  bottom to top
//	side 4 (top):    right to left
//
// The i-th pad takes the i-th physical pin's number, so the pin table's
// order is the numbering.
func placeQuad(fp *Footprint, tpl *template.Template, pins []pintable.Pin, cfg Config) error {
	perSide := tpl.PinsPerSide()
	if len(pins) != perSide*4 {
		return &GeometryConstraintError{
			Family: string(tpl.Family),
			Err:    fmt.Errorf("%w: %d physical pins for %d perimeter positions", ErrOutOfBounds, len(pins), perSide*4),
		}
	}

	padLen, padW, center := perimeterPadDims(tpl, cfg)
	span := float64(perSide-1) * tpl.Pitch
	start := -span / 2

	emit := func(pin pintable.Pin, x, y, w, h float64) {
		fp.Pads = append(fp.Pads, Pad{
			Number: pin.Number,
			Type:   PadSMD,
			Shape:  ShapeRoundRect,
			X:      cfg.snap(x),
			Y:      cfg.snap(y),
			W:      cfg.snap(w),
			H:      cfg.snap(h),
			Layer:  "F.Cu",
		})
	}

	k := 0
	for i := 0; i < perSide; i++ { // left, going down
		emit(pins[k], -center, start+float64(i)*tpl.Pitch, padLen, padW)
		k++
	}
	for i := 0; i < perSide; i++ { // bottom, going right
		emit(pins[k], start+float64(i)*tpl.Pitch, center, padW, padLen)
		k++
	}
	for i := 0; i < perSide; i++ { // right, going up
		emit(pins[k], center, -start-float64(i)*tpl.Pitch, padLen, padW)
		k++
	}
	for i := 0; i < perSide; i++ { // top, going left
		emit(pins[k], -start-float64(i)*tpl.Pitch, -center, padW, padLen)
		k++
	}
	return nil
}

// placeDual distributes pads in two columns: left side top to bottom,
// then right side bottom to top (DIP/SOIC numbering).
func placeDual(fp *Footprint, tpl *template.Template, pins []pintable.Pin, cfg Config) error {
	perSide := tpl.PinsPerSide()
	if len(pins) != perSide*2 {
		return &GeometryConstraintError{
			Family: string(tpl.Family),
			Err:    fmt.Errorf("%w: %d physical pins for %d perimeter positions", ErrOutOfBounds, len(pins), perSide*2),
		}
	}

	span := float64(perSide-1) * tpl.Pitch
	start := -span / 2

	if tpl.LeadStyle == template.LeadThroughHole {
		drill := tpl.LeadWidth + 0.2
		dia := drill + 0.6
		center := tpl.LeadSpan / 2
		emit := func(pin pintable.Pin, x, y float64, first bool) {
			shape := ShapeCircle
			if first {
				shape = ShapeRect // square pad marks pin 1 on THT parts
			}
			fp.Pads = append(fp.Pads, Pad{
				Number: pin.Number,
				Type:   PadThruHole,
				Shape:  shape,
				X:      cfg.snap(x),
				Y:      cfg.snap(y),
				W:      cfg.snap(dia),
				H:      cfg.snap(dia),
				Drill:  drill,
				Layer:  "*.Cu",
			})
		}
		k := 0
		for i := 0; i < perSide; i++ {
			emit(pins[k], -center, start+float64(i)*tpl.Pitch, k == 0)
			k++
		}
		for i := 0; i < perSide; i++ {
			emit(pins[k], center, -start-float64(i)*tpl.Pitch, false)
			k++
		}
		return nil
	}

	padLen, padW, center := perimeterPadDims(tpl, cfg)
	emit := func(pin pintable.Pin, x, y float64) {
		fp.Pads = append(fp.Pads, Pad{
			Number: pin.Number,
			Type:   PadSMD,
			Shape:  ShapeRoundRect,
			X:      cfg.snap(x),
			Y:      cfg.snap(y),
			W:      cfg.snap(padLen),
			H:      cfg.snap(padW),
			Layer:  "F.Cu",
		})
	}
	k := 0
	for i := 0; i < perSide; i++ { // left, going down
		emit(pins[k], -center, start+float64(i)*tpl.Pitch)
		k++
	}
	for i := 0; i < perSide; i++ { // right, going up
		emit(pins[k], center, -start-float64(i)*tpl.Pitch)
		k++
	}
	return nil
}

// perimeterPadDims computes the pad length, pad width, and the distance
// from origin to pad center for perimeter families.
//
// Leaded packages: the pad reaches from the body edge past the lead tip
// by the configured extension. Leadless (QFN/DFN): the pad sits flush
// with the body edge, flattened to the terminal length plus a small toe.
func perimeterPadDims(tpl *template.Template, cfg Config) (padLen, padW, center float64) {
	padW = tpl.Pitch * cfg.PadWidthRatio
	if tpl.LeadWidth > 0 && padW < tpl.LeadWidth {
		padW = tpl.LeadWidth
	}
	if tpl.Leadless() {
		padLen = tpl.LeadLength + 0.2
		center = tpl.BodyWidth/2 - padLen/2 + 0.1
		return padLen, padW, center
	}
	padLen = (tpl.LeadSpan-tpl.BodyWidth)/2 + cfg.PadExtension
	center = tpl.BodyWidth/2 + padLen/2
	return padLen, padW, center
}
