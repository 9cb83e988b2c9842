package kicad

import (
	"fmt"
	"io"

	"github.com/kiforge/kiforge/internal/footprint"
)

const (
	formatVersion = "20240108"
	generatorName = "kiforge"
)

// WriteFootprint renders a .kicad_mod document.
func WriteFootprint(w io.Writer, fp *footprint.Footprint) error {
	doc := fp.Name
	root := n("footprint", q(fp.Name)).add(
		n("version", formatVersion),
		n("generator", q(generatorName)),
		n("layer", q("F.Cu")),
		n("attr", footprintAttr(fp)),
	)

	refY := fp.Courtyard.MinY - 1.0
	root.add(
		textNode(doc, "reference", "REF**", 0, refY, "F.SilkS"),
		textNode(doc, "value", fp.Name, 0, fp.Courtyard.MaxY+1.0, "F.Fab"),
	)

	for i, seg := range fp.Silkscreen {
		root.add(lineNode(doc, fmt.Sprintf("silk-%d", i), seg))
	}
	for i, c := range fp.Markers {
		root.add(circleNode(doc, fmt.Sprintf("marker-%d", i), c))
	}
	for i, seg := range courtyardSegments(fp) {
		root.add(lineNode(doc, fmt.Sprintf("crtyd-%d", i), seg))
	}
	for i := range fp.Pads {
		root.add(padNode(doc, i, &fp.Pads[i]))
	}
	return writeDoc(w, root)
}

func footprintAttr(fp *footprint.Footprint) string {
	for i := range fp.Pads {
		if fp.Pads[i].Type == footprint.PadThruHole {
			return "through_hole"
		}
	}
	return "smd"
}

// courtyardSegments closes the courtyard rectangle as four lines on
// F.CrtYd with the drafting line width.
func courtyardSegments(fp *footprint.Footprint) []footprint.Segment {
	r := fp.Courtyard
	const w = 0.05
	return []footprint.Segment{
		{X1: r.MinX, Y1: r.MinY, X2: r.MaxX, Y2: r.MinY, Layer: "F.CrtYd", Width: w},
		{X1: r.MaxX, Y1: r.MinY, X2: r.MaxX, Y2: r.MaxY, Layer: "F.CrtYd", Width: w},
		{X1: r.MaxX, Y1: r.MaxY, X2: r.MinX, Y2: r.MaxY, Layer: "F.CrtYd", Width: w},
		{X1: r.MinX, Y1: r.MaxY, X2: r.MinX, Y2: r.MinY, Layer: "F.CrtYd", Width: w},
	}
}

func textNode(doc, kind, text string, x, y float64, layer string) *node {
	return n("fp_text", kind, q(text)).add(
		n("at", mm(x), mm(y)),
		n("layer", q(layer)),
		uuidNode(doc, "text-"+kind),
		n("effects").add(
			n("font").add(
				n("size", "1", "1"),
				n("thickness", "0.15"),
			),
		),
	)
}

func lineNode(doc, key string, seg footprint.Segment) *node {
	return n("fp_line").add(
		n("start", mm(seg.X1), mm(seg.Y1)),
		n("end", mm(seg.X2), mm(seg.Y2)),
		n("stroke").add(n("width", mm(seg.Width)), n("type", "solid")),
		n("layer", q(seg.Layer)),
		uuidNode(doc, key),
	)
}

func circleNode(doc, key string, c footprint.Circle) *node {
	fill := "none"
	if c.Fill {
		fill = "solid"
	}
	return n("fp_circle").add(
		n("center", mm(c.CX), mm(c.CY)),
		n("end", mm(c.CX+c.Radius), mm(c.CY)),
		n("stroke").add(n("width", mm(c.Width)), n("type", "solid")),
		n("fill", fill),
		n("layer", q(c.Layer)),
		uuidNode(doc, key),
	)
}

func padNode(doc string, index int, p *footprint.Pad) *node {
	nd := n("pad", q(p.Number), string(p.Type), padShape(p)).add(
		n("at", mm(p.X), mm(p.Y)),
		n("size", mm(p.W), mm(p.H)),
	)
	if p.Type == footprint.PadThruHole {
		nd.add(
			n("drill", mm(p.Drill)),
			n("layers", q("*.Cu"), q("*.Mask")),
		)
	} else {
		nd.add(n("layers", q("F.Cu"), q("F.Paste"), q("F.Mask")))
	}
	if p.Shape == footprint.ShapeRoundRect {
		nd.add(n("roundrect_rratio", "0.25"))
	}
	nd.add(uuidNode(doc, fmt.Sprintf("pad-%d", index)))
	return nd
}

func padShape(p *footprint.Pad) string {
	switch p.Shape {
	case footprint.ShapeCircle:
		return "circle"
	case footprint.ShapeRoundRect:
		return "roundrect"
	default:
		return "rect"
	}
}
