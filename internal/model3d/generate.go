package model3d

import (
	"math"

	"github.com/kiforge/kiforge/internal/footprint"
	"github.com/kiforge/kiforge/internal/model3d/meshkernel"
	"github.com/kiforge/kiforge/internal/template"
)

// Generate builds the model for a template and its generated footprint.
// One lead solid is emitted per physical pad; the thermal land gets no
// lead. Every solid is validated before the model is returned, so a
// caller holding a *Model holds manifold geometry.
func Generate(tpl *template.Template, fp *footprint.Footprint, cfg Config) (*Model, error) {
	m := &Model{Name: fp.Name}
	k := cfg.kernel()

	standoff := tpl.Standoff
	if standoff == 0 && tpl.LeadStyle == template.LeadBall {
		standoff = tpl.BallDiameter * 0.8
	}

	m.Body = k.TaperedBox(
		meshkernel.Vec3{Z: standoff + tpl.BodyHeight/2},
		tpl.BodyWidth, tpl.BodyLength, tpl.BodyHeight,
		cfg.BodyTaper,
	)
	if err := k.Validate(m.Body); err != nil {
		return nil, &DegenerateGeometryError{Part: "body", Err: err}
	}

	for i := range fp.Pads {
		pad := &fp.Pads[i]
		if pad.Thermal {
			continue
		}
		lead := Lead{
			PinNumber: pad.Number,
			Style:     tpl.LeadStyle,
			Root:      meshkernel.Vec3{X: pad.X, Y: pad.Y},
		}
		switch tpl.LeadStyle {
		case template.LeadBall:
			lead.Solid = ballLead(k, tpl, pad, cfg)
		case template.LeadThroughHole:
			lead.Solid = throughHoleLead(k, tpl, pad, cfg)
		case template.LeadNoLead:
			lead.Solid = flatLead(k, tpl, pad, cfg)
		case template.LeadJLead:
			lead.Solid = jLead(k, tpl, pad, cfg)
		default:
			lead.Solid = gullWingLead(k, tpl, pad, cfg)
		}
		if err := k.Validate(lead.Solid); err != nil {
			return nil, &DegenerateGeometryError{Part: pad.Number, Err: err}
		}
		m.Leads = append(m.Leads, lead)
	}
	return m, nil
}

// leadAxis returns unit steps toward the body along the lead's run
// direction. Perimeter pads run along the axis of their larger offset
// from center.
func leadAxis(pad *footprint.Pad) (dx, dy float64) {
	if math.Abs(pad.X) >= math.Abs(pad.Y) {
		if pad.X > 0 {
			return -1, 0
		}
		return 1, 0
	}
	if pad.Y > 0 {
		return 0, -1
	}
	return 0, 1
}

// gullWingLead approximates the formed lead as a foot on the pad plus a
// riser climbing to the body's mid-height. The foot center is the pad
// center, which pins the root to the footprint.
func gullWingLead(k Kernel, tpl *template.Template, pad *footprint.Pad, cfg Config) *meshkernel.Solid {
	dx, dy := leadAxis(pad)
	th := cfg.LeadThickness
	w := tpl.LeadWidth
	if w == 0 {
		w = math.Min(pad.W, pad.H)
	}
	run := tpl.LeadLength
	if run == 0 {
		run = math.Max(pad.W, pad.H)
	}

	foot := footBox(k, pad, dx, w, run, th)

	// Riser from the foot's inner end up to the lead's exit from the
	// body side, at half the body height plus standoff.
	exitZ := tpl.Standoff + tpl.BodyHeight/2
	riser := k.Box(
		meshkernel.Vec3{
			X: pad.X + dx*run/2,
			Y: pad.Y + dy*run/2,
			Z: (exitZ + th) / 2,
		},
		riserW(dx, w, th), riserW(dy, w, th), exitZ-th,
	)
	return k.Union(foot, riser)
}

// jLead curls under the body: a single vertical bar at the pad center
// reaching the body's mid-height.
func jLead(k Kernel, tpl *template.Template, pad *footprint.Pad, cfg Config) *meshkernel.Solid {
	w := tpl.LeadWidth
	if w == 0 {
		w = math.Min(pad.W, pad.H)
	}
	h := tpl.Standoff + tpl.BodyHeight/2
	return k.Box(
		meshkernel.Vec3{X: pad.X, Y: pad.Y, Z: h / 2},
		w, w, h,
	)
}

// flatLead is the no-lead terminal: a thin plate on the pad flush with
// the body underside.
func flatLead(k Kernel, tpl *template.Template, pad *footprint.Pad, cfg Config) *meshkernel.Solid {
	dx, _ := leadAxis(pad)
	w := tpl.LeadWidth
	if w == 0 {
		w = math.Min(pad.W, pad.H)
	}
	run := tpl.LeadLength
	if run == 0 {
		run = math.Max(pad.W, pad.H)
	}
	return footBox(k, pad, dx, w, run, cfg.LeadThickness)
}

// ballLead is a solder sphere resting on the pad.
func ballLead(k Kernel, tpl *template.Template, pad *footprint.Pad, cfg Config) *meshkernel.Solid {
	r := tpl.BallDiameter / 2
	if r == 0 {
		r = pad.W / 2
	}
	segments := cfg.SphereSegments
	if segments < 3 {
		segments = 16
	}
	return k.Sphere(meshkernel.Vec3{X: pad.X, Y: pad.Y, Z: r}, r, segments)
}

// throughHoleLead is a square-section pin dropping below the board
// plane and rising into the body.
func throughHoleLead(k Kernel, tpl *template.Template, pad *footprint.Pad, cfg Config) *meshkernel.Solid {
	w := tpl.LeadWidth
	if w == 0 {
		w = pad.Drill * 0.8
	}
	top := tpl.Standoff + tpl.BodyHeight/2
	h := top + cfg.HoleDepth
	return k.Box(
		meshkernel.Vec3{X: pad.X, Y: pad.Y, Z: top - h/2},
		w, w, h,
	)
}

// footBox builds the horizontal foot centered on the pad, oriented
// along the lead's run axis.
func footBox(k Kernel, pad *footprint.Pad, dx, w, run, th float64) *meshkernel.Solid {
	c := meshkernel.Vec3{X: pad.X, Y: pad.Y, Z: th / 2}
	if dx != 0 {
		return k.Box(c, run, w, th)
	}
	return k.Box(c, w, run, th)
}

func riserW(axis, w, th float64) float64 {
	if axis != 0 {
		return th
	}
	return w
}
